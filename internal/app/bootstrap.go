package app

import (
	"context"
	"errors"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/cache"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/metrics"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/provider"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/router"
)

// BuildRunner 组装容器、路由与 HTTP 服务；退出时依次刷新追踪、关闭 Redis、关闭数据库
func BuildRunner(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.New("config is nil")
	}
	if opts.DB == nil {
		return nil, errors.New("database is nil")
	}

	container := provider.NewContainer(opts.Config, opts.DB, buildMetrics(opts.Config))
	runner := NewRunner(NewHTTPService(opts.Config.Server, router.SetupRouter(opts.Config, container)))
	if opts.Tracer != nil {
		runner.OnShutdown("telemetry", opts.Tracer.Shutdown)
	}
	runner.OnShutdown("redis", func(context.Context) error { return cache.Close() })
	runner.OnShutdown("database", func(context.Context) error { return models.CloseDB(opts.DB) })
	return runner, nil
}

func buildMetrics(cfg *config.Config) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.NewMetrics(metrics.NewRegistry())
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	runner, err := BuildRunner(opts)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Config.Server.Mode)
	return RunWithOptions(runner, opts)
}
