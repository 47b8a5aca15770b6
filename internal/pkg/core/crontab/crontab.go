package crontab

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// ICrontab 定时任务接口
type ICrontab interface {
	// Name 任务名称
	Name() string

	// Spec 配置定时任务规则
	Spec() string

	// Enable 是否启用
	Enable() bool

	// Do 执行任务
	Do(ctx context.Context) error
}

// Crontab 定时任务调度器
type Crontab struct {
	cron *cron.Cron
	jobs []ICrontab
}

func NewCrontab(jobs []ICrontab) *Crontab {
	return &Crontab{
		cron: cron.New(),
		jobs: jobs,
	}
}

// Run 注册并启动全部任务，阻塞直到 ctx 结束
func (c *Crontab) Run(ctx context.Context) error {
	for _, job := range c.jobs {
		if !job.Enable() {
			continue
		}

		job := job
		_, err := c.cron.AddFunc(job.Spec(), func() {
			if err := job.Do(ctx); err != nil {
				slog.ErrorContext(ctx, "定时任务执行失败", "name", job.Name(), "error", err)
			}
		})
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "定时任务已注册", "name", job.Name(), "spec", job.Spec())
	}

	c.cron.Start()

	<-ctx.Done()

	stopCtx := c.cron.Stop()
	<-stopCtx.Done()

	return ctx.Err()
}
