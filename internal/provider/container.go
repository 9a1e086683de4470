package provider

import (
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/cache"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/logger"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/metrics"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/repository"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config  *config.Config
	DB      *gorm.DB
	Metrics *metrics.Metrics

	// Repositories
	ItemRepo         repository.ItemRepository
	OrganizationRepo repository.OrganizationRepository
	PricingRepo      repository.PricingRepository

	// Services
	ItemService         *service.ItemService
	OrganizationService *service.OrganizationService
	PricingService      *service.PricingService
}

// NewContainer 初始化容器；m 为 nil 时不上报指标
func NewContainer(cfg *config.Config, db *gorm.DB, m *metrics.Metrics) *Container {
	// 初始化 Redis（限流）
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config:  cfg,
		DB:      db,
		Metrics: m,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	c.ItemRepo = repository.NewItemRepository(c.DB)
	c.OrganizationRepo = repository.NewOrganizationRepository(c.DB)
	c.PricingRepo = repository.NewPricingRepository(c.DB)
}

func (c *Container) initServices() {
	c.ItemService = service.NewItemService(c.ItemRepo)
	c.OrganizationService = service.NewOrganizationService(c.OrganizationRepo)
	c.PricingService = service.NewPricingService(c.PricingRepo, c.OrganizationRepo, c.ItemRepo)
	if c.Metrics != nil {
		c.PricingService.SetRecorder(c.Metrics)
	}
}
