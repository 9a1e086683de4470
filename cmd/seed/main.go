package main

import (
	"context"
	"errors"
	"os"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/logger"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/repository"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/service"
)

const (
	demoOrganization = "Demo Logistics"
	demoZone         = "central"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("config_load_failed", err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()

	// 连接数据库
	db, err := models.OpenDB(models.DBOptions{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Pool: models.DBPoolConfig{
			MaxOpenConns: cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns: cfg.Database.Pool.MaxIdleConns,
		},
	})
	if err != nil {
		fatal("database_open_failed", err)
	}
	defer func() { _ = models.CloseDB(db) }()

	// 自动迁移
	if err := models.AutoMigrate(db); err != nil {
		fatal("database_migrate_failed", err)
	}

	ctx := context.Background()
	itemRepo := repository.NewItemRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	itemSvc := service.NewItemService(itemRepo)
	orgSvc := service.NewOrganizationService(orgRepo)
	pricingSvc := service.NewPricingService(pricingRepo, orgRepo, itemRepo)

	// 物品类型
	descriptions := map[string]string{
		constants.ItemTypePerishable:    "Food that spoils quickly and needs fast delivery",
		constants.ItemTypeNonPerishable: "Packaged goods with a long shelf life",
	}
	itemIDs := make(map[string]uint, len(constants.ItemTypes))
	for _, itemType := range constants.ItemTypes {
		desc := descriptions[itemType]
		err := itemSvc.Create(ctx, service.CreateItemInput{Type: itemType, Description: &desc})
		if err != nil && !errors.Is(err, service.ErrItemExists) {
			fatal("seed_item_failed", err)
		}
		item, err := itemSvc.GetByType(ctx, itemType)
		if err != nil {
			fatal("seed_item_failed", err)
		}
		itemIDs[itemType] = item.ID
	}

	// 组织
	if err := orgSvc.Create(ctx, demoOrganization); err != nil && !errors.Is(err, service.ErrOrganizationExists) {
		fatal("seed_organization_failed", err)
	}
	org, err := orgSvc.GetByName(ctx, demoOrganization)
	if err != nil {
		fatal("seed_organization_failed", err)
	}

	// 计价规则：10km 内固定 10，超出部分每公里 1.5 / 1
	rules := []service.CreatePricingInput{
		{OrganizationID: org.ID, ItemID: itemIDs[constants.ItemTypePerishable], Zone: demoZone, BaseDistance: 10000, PricePerKM: 1.5, FixPrice: 10},
		{OrganizationID: org.ID, ItemID: itemIDs[constants.ItemTypeNonPerishable], Zone: demoZone, BaseDistance: 10000, PricePerKM: 1, FixPrice: 10},
	}
	for _, rule := range rules {
		_, total, err := pricingSvc.List(ctx, service.PricingListInput{
			Page:           1,
			PageSize:       1,
			Search:         demoZone,
			ItemID:         rule.ItemID,
			OrganizationID: rule.OrganizationID,
		})
		if err != nil {
			fatal("seed_pricing_failed", err)
		}
		if total > 0 {
			continue
		}
		if _, err := pricingSvc.Create(ctx, rule); err != nil {
			fatal("seed_pricing_failed", err)
		}
	}

	logger.Infow("seed_completed", "organization_id", org.ID, "items", len(itemIDs), "rules", len(rules))
}

func fatal(event string, err error) {
	logger.Errorw(event, "error", err)
	logger.Sync()
	os.Exit(1)
}
