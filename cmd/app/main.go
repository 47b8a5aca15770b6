package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/zhangdayeb/go-redpacket/config"
	"github.com/zhangdayeb/go-redpacket/internal/apis"
)

func main() {
	app := &cli.App{
		Name:  "go-redpacket",
		Usage: "红包分配与发放服务",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./config.yaml",
				Usage:   "配置文件路径",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "启动 HTTP 服务",
				Action: func(ctx *cli.Context) error {
					conf := config.New(ctx.String("config"))
					return apis.NewServer(ctx, NewHttpInjector(conf))
				},
			},
			{
				Name:  "crontab",
				Usage: "启动定时任务",
				Action: func(ctx *cli.Context) error {
					conf := config.New(ctx.String("config"))
					return NewCrontabInjector(conf).Run(ctx.Context)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
