package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Service 长期运行的服务；Start 阻塞至 Stop 被调用或出错
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type cleanup struct {
	name string
	fn   CleanupFunc
}

// Runner 启动服务并负责有序退出：先停服务（HTTP 排空请求），再按注册顺序清理资源
type Runner struct {
	services []Service
	cleanups []cleanup
	log      *zap.SugaredLogger
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services, log: zap.NewNop().Sugar()}
}

// OnShutdown 注册清理函数，fn 为 nil 时忽略
func (r *Runner) OnShutdown(name string, fn CleanupFunc) *Runner {
	if fn != nil {
		r.cleanups = append(r.cleanups, cleanup{name: name, fn: fn})
	}
	return r
}

// RunWithOptions 在信号上下文中运行
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	runner.log = opts.Logger

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout)
}

// Run 启动全部服务。任一服务出错或提前退出、或 ctx 结束时停止所有服务，返回第一个错误
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := pool.New().WithContext(runCtx).WithCancelOnError().WithFirstError()
	for _, svc := range r.services {
		p.Go(func(ctx context.Context) error {
			r.log.Infow("service_start", "service", svc.Name())
			err := svc.Start(ctx)
			r.log.Infow("service_exit", "service", svc.Name(), "error", err)
			if err == nil {
				cancel()
			}
			return err
		})
	}
	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		r.stopServices(stopTimeout)
		return nil
	})

	runErr := p.Wait()
	r.runCleanups(stopTimeout)
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (r *Runner) stopServices(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, svc := range r.services {
		if err := svc.Stop(ctx); err != nil {
			r.log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}

func (r *Runner) runCleanups(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, c := range r.cleanups {
		if err := c.fn(ctx); err != nil {
			r.log.Warnw("cleanup_failed", "resource", c.name, "error", err)
			continue
		}
		r.log.Infow("cleanup_done", "resource", c.name)
	}
}
