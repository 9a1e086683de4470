package service

import (
	"strings"
	"testing"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type testServices struct {
	db           *gorm.DB
	items        *ItemService
	organization *OrganizationService
	pricing      *PricingService
}

// newTestServices 基于独立内存库构建全部服务
func newTestServices(t *testing.T) *testServices {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:svc_" + name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	itemRepo := repository.NewItemRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	return &testServices{
		db:           db,
		items:        NewItemService(itemRepo),
		organization: NewOrganizationService(orgRepo),
		pricing:      NewPricingService(pricingRepo, orgRepo, itemRepo),
	}
}

func (s *testServices) mustItem(t *testing.T, itemType string) *models.Item {
	t.Helper()
	if err := s.items.Create(t.Context(), CreateItemInput{Type: itemType}); err != nil {
		t.Fatalf("create item %s failed: %v", itemType, err)
	}
	item, err := s.items.GetByType(t.Context(), itemType)
	if err != nil {
		t.Fatalf("get item %s failed: %v", itemType, err)
	}
	return item
}

func (s *testServices) mustOrganization(t *testing.T, name string) *models.Organization {
	t.Helper()
	if err := s.organization.Create(t.Context(), name); err != nil {
		t.Fatalf("create organization %s failed: %v", name, err)
	}
	org, err := s.organization.GetByName(t.Context(), name)
	if err != nil {
		t.Fatalf("get organization %s failed: %v", name, err)
	}
	return org
}

func strPtr(v string) *string {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
