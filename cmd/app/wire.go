//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/zhangdayeb/go-redpacket/config"
	"github.com/zhangdayeb/go-redpacket/internal/apis"
	"github.com/zhangdayeb/go-redpacket/internal/mission/cron"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core/crontab"
	"github.com/zhangdayeb/go-redpacket/internal/provider"
	"github.com/zhangdayeb/go-redpacket/internal/repository/cache"
	"github.com/zhangdayeb/go-redpacket/internal/repository/repo"
	"github.com/zhangdayeb/go-redpacket/internal/service"
)

func NewHttpInjector(conf *config.Config) *apis.Provider {
	panic(
		wire.Build(
			provider.ProviderSet,
			repo.ProviderSet,
			cache.ProviderSet,
			service.ProviderSet,
			apis.ProviderSet,
		),
	)
}

func NewCrontabInjector(conf *config.Config) *crontab.Crontab {
	panic(
		wire.Build(
			provider.ProviderSet,
			repo.ProviderSet,
			cache.ProviderSet,
			service.ProviderSet,
			cron.ProviderSet,
		),
	)
}
