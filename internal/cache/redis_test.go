package cache

import (
	"testing"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
)

func TestInitRedisDisabled(t *testing.T) {
	t.Cleanup(func() { _ = Close() })
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("disabled redis should expose no client")
	}
	if err := Ping(t.Context()); err != nil {
		t.Fatalf("ping on disabled redis should be noop: %v", err)
	}
}

func TestInitRedisEnabledIsLazy(t *testing.T) {
	t.Cleanup(func() {
		_ = Close()
		redisPrefix = defaultPrefix
	})
	if err := InitRedis(&config.RedisConfig{Enabled: true, Port: 6390, Prefix: "pricing"}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !Enabled() || Client() == nil {
		t.Fatalf("enabled redis should expose a client")
	}
	if got := Client().Options().Addr; got != "127.0.0.1:6390" {
		t.Fatalf("unexpected addr %s", got)
	}
	if got := Key("rate", "", "pricing"); got != "pricing:rate:pricing" {
		t.Fatalf("unexpected key %s", got)
	}
	if err := Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("closed redis should be disabled")
	}
}

func TestKeyDefaultPrefix(t *testing.T) {
	if got := Key("rate", "ip"); got != "dp:rate:ip" {
		t.Fatalf("unexpected key %s", got)
	}
}
