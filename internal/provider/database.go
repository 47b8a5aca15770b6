package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zhangdayeb/go-redpacket/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// NewMySQLClient 创建 MySQL 连接
func NewMySQLClient(conf *config.Config) *gorm.DB {
	logLevel := logger.Silent
	if conf.Debug() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		// 将驱动层的唯一键冲突转换为 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		panic(fmt.Errorf("mysql connect error: %w", err))
	}

	sdb, err := db.DB()
	if err != nil {
		panic(err)
	}

	sdb.SetMaxIdleConns(10)
	sdb.SetMaxOpenConns(100)
	sdb.SetConnMaxLifetime(time.Hour)

	return db
}

// NewRedisClient 创建 Redis 连接
func NewRedisClient(conf *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr(),
		Password: conf.Redis.Auth,
		DB:       conf.Redis.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("redis connect error", "error", err)
		panic(err)
	}

	return client
}
