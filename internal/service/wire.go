package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewAmountSplitter,
	NewWalletService,
	wire.Bind(new(IWalletService), new(*WalletService)),
	NewRedPacketService,
	wire.Bind(new(IRedPacketService), new(*RedPacketService)),
)
