//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanup := []interface{}{&models.Pricing{}, &models.Item{}, &models.Organization{}}
	_ = db.Migrator().DropTable(cleanup...)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanup...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresOrganizationSearchUsesILike(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewOrganizationRepository(db)
	now := time.Now()
	for _, name := range []string{"Fresh Foods", "frozen FOODS", "Parcel Co"} {
		if err := repo.Create(t.Context(), &models.Organization{Name: name, CreatedAt: now}); err != nil {
			t.Fatalf("create organization failed: %v", err)
		}
	}

	orgs, total, err := repo.List(t.Context(), OrganizationListFilter{Page: 1, PageSize: 10, Search: "foods"})
	if err != nil {
		t.Fatalf("list organizations failed: %v", err)
	}
	if total != 2 || len(orgs) != 2 {
		t.Fatalf("ilike search want 2 got total=%d len=%d", total, len(orgs))
	}
}

func TestPostgresForeignKeyRestrictsItemDelete(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	itemRepo := NewItemRepository(db)
	orgRepo := NewOrganizationRepository(db)
	pricingRepo := NewPricingRepository(db)

	org := &models.Organization{Name: "acme"}
	if err := orgRepo.Create(t.Context(), org); err != nil {
		t.Fatalf("create organization failed: %v", err)
	}
	item := &models.Item{Type: constants.ItemTypePerishable}
	if err := itemRepo.Create(t.Context(), item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	if err := pricingRepo.Create(t.Context(), &models.Pricing{OrganizationID: org.ID, ItemID: item.ID, Zone: "z1", BaseDistance: 1000, PricePerKM: 2, FixPrice: 5}); err != nil {
		t.Fatalf("create pricing failed: %v", err)
	}

	_, err := itemRepo.Delete(t.Context(), item.ID)
	if !IsForeignKeyErr(err) {
		t.Fatalf("deleting referenced item should violate foreign key, got %v", err)
	}

	err = pricingRepo.Create(t.Context(), &models.Pricing{OrganizationID: org.ID + 999, ItemID: item.ID, Zone: "z1"})
	if !IsForeignKeyErr(err) {
		t.Fatalf("dangling organization reference should violate foreign key, got %v", err)
	}

	dup := &models.Item{Type: constants.ItemTypePerishable}
	if err := itemRepo.Create(t.Context(), dup); !IsDuplicateKeyErr(err) {
		t.Fatalf("duplicate item type should violate unique index, got %v", err)
	}
}
