package app

import (
	"context"
	"os"
	"time"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CleanupFunc 服务全部停止后执行的资源清理
type CleanupFunc func(ctx context.Context) error

// Tracer 退出前需要刷新导出的追踪组件
type Tracer interface {
	Shutdown(ctx context.Context) error
}

// Options 应用启动选项；DB 与 Tracer 的关闭由 Runner 接管
type Options struct {
	Config          *config.Config
	DB              *gorm.DB
	Tracer          Tracer
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

// normalizeOptions 补齐默认参数，超时优先取 server.shutdown_timeout_seconds
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 && opts.Config != nil && opts.Config.Server.ShutdownTimeoutSeconds > 0 {
		opts.ShutdownTimeout = time.Duration(opts.Config.Server.ShutdownTimeoutSeconds) * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 15 * time.Second
	}
	return opts
}
