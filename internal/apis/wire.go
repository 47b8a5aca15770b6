package apis

import (
	"github.com/google/wire"
	v1 "github.com/zhangdayeb/go-redpacket/internal/apis/handler/web/v1"
	"github.com/zhangdayeb/go-redpacket/internal/apis/router"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(v1.RedPacket), "*"),
	wire.Struct(new(v1.Wallet), "*"),
	router.NewRouter,
	wire.Struct(new(Provider), "*"),
)
