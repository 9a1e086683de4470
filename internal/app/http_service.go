package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
)

// HTTPService 计价 API 的 HTTP 服务，超时取自 server 配置
type HTTPService struct {
	server *http.Server
	ready  chan struct{}

	mu   sync.Mutex
	addr net.Addr
}

// NewHTTPService 按 server 配置创建 HTTP 服务
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: seconds(cfg.ReadHeaderTimeoutSeconds, 10),
			ReadTimeout:       seconds(cfg.ReadTimeoutSeconds, 0),
			WriteTimeout:      seconds(cfg.WriteTimeoutSeconds, 0),
			IdleTimeout:       seconds(cfg.IdleTimeoutSeconds, 0),
		},
		ready: make(chan struct{}),
	}
}

func seconds(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Second
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Ready 监听成功后关闭
func (s *HTTPService) Ready() <-chan struct{} {
	return s.ready
}

// Addr 实际监听地址（端口为 0 时由系统分配），未监听时为空
func (s *HTTPService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addr == nil {
		return ""
	}
	return s.addr.String()
}

// Start 监听并处理请求，Stop 后返回 nil
func (s *HTTPService) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	close(s.ready)

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止接收新连接并等待进行中的请求完成
func (s *HTTPService) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
