package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/zhangdayeb/go-redpacket/config"
	"github.com/zhangdayeb/go-redpacket/internal/provider"
	"github.com/zhangdayeb/go-redpacket/internal/repository/model"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Config
	conf := config.New("./config.yaml")

	// 2. Init DB
	db := provider.NewMySQLClient(conf)

	fmt.Println("Starting migration...")

	if err := db.AutoMigrate(
		&model.RedPacket{},
		&model.RedPacketRecord{},
		&model.Wallet{},
		&model.WalletTransaction{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("Migration completed. Seeding test wallets...")

	// 测试钱包，初始余额 100 元
	for userId := 1001; userId <= 1100; userId++ {
		var wallet model.Wallet
		err := db.Where("user_id = ?", userId).First(&wallet).Error
		if err == nil {
			fmt.Printf("Wallet for user %d already exists (balance: %d)\n", userId, wallet.Balance)
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Query wallet for user %d failed: %v", userId, err)
		}

		wallet = model.Wallet{
			UserId:  userId,
			Balance: 10000,
		}

		if err := db.Create(&wallet).Error; err != nil {
			log.Printf("Failed to create wallet for user %d: %v\n", userId, err)
			continue
		}

		fmt.Printf("Created wallet for user %d\n", userId)
	}

	fmt.Println("Seeding completed.")
}
