// Package apis 提供 HTTP API 服务实现
//
//	@title						go-redpacket API
//	@version					1.0
//	@description				go-redpacket 是一个红包分配与发放引擎
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@BasePath					/
package apis

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"github.com/zhangdayeb/go-redpacket/config"
	"golang.org/x/sync/errgroup"
)

type Provider struct {
	Config *config.Config
	Engine *gin.Engine
}

func NewServer(ctx *cli.Context, app *Provider) error {
	if !app.Config.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	log.Printf("HTTP Listen Port %s", app.Config.Server.HttpAddr)
	log.Printf("HTTP Server Pid  %d", os.Getpid())

	return run(c, eg, groupCtx, app)
}

func run(c chan os.Signal, eg *errgroup.Group, ctx context.Context, app *Provider) error {
	serv := &http.Server{
		Addr:    app.Config.Server.HttpAddr,
		Handler: app.Engine,
	}

	// 启动 http 服务
	eg.Go(func() error {
		err := serv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		defer func() {
			log.Println("Shutting down serv...")

			// 等待中断信号以优雅地关闭服务器（设置 3 秒的超时时间）
			timeCtx, timeCancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.Fatalf("HTTP Server listenShutdown Err: %s", err)
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("HTTP Server forced to shutdown: %s", err)
	}

	log.Println("Server exiting")

	return nil
}
