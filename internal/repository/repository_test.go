package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupRepositoryTestDB 每个测试使用独立的内存库
func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
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
	return db
}

func seedOrganization(t *testing.T, db *gorm.DB, name string, createdAt time.Time) *models.Organization {
	t.Helper()
	org := &models.Organization{Name: name, CreatedAt: createdAt}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("create organization failed: %v", err)
	}
	return org
}

func seedItem(t *testing.T, db *gorm.DB, itemType string, createdAt time.Time) *models.Item {
	t.Helper()
	description := strings.ToLower(itemType) + " goods"
	item := &models.Item{Type: itemType, Description: &description, CreatedAt: createdAt}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func seedPricing(t *testing.T, db *gorm.DB, orgID, itemID uint, zone string, createdAt time.Time) *models.Pricing {
	t.Helper()
	pricing := &models.Pricing{
		OrganizationID: orgID,
		ItemID:         itemID,
		Zone:           zone,
		BaseDistance:   5000,
		PricePerKM:     1.5,
		FixPrice:       10,
		CreatedAt:      createdAt,
	}
	if err := db.Create(pricing).Error; err != nil {
		t.Fatalf("create pricing failed: %v", err)
	}
	return pricing
}

func TestItemOrder(t *testing.T) {
	cases := map[string]string{
		"":               defaultOrder,
		"createdAt":      defaultOrder,
		"createdAt:asc":  "created_at ASC, id ASC",
		"createdAt:desc": defaultOrder,
		"name:asc":       defaultOrder,
	}
	for input, want := range cases {
		if got := itemOrder(input); got != want {
			t.Fatalf("itemOrder(%q) want %q got %q", input, want, got)
		}
	}
}

func TestOrganizationOrder(t *testing.T) {
	cases := map[string]string{
		"":          defaultOrder,
		"createdAt": defaultOrder,
		"name":      "name DESC, id DESC",
		"name:asc":  "name ASC, id ASC",
		"name:desc": "name DESC, id DESC",
	}
	for input, want := range cases {
		if got := organizationOrder(input); got != want {
			t.Fatalf("organizationOrder(%q) want %q got %q", input, want, got)
		}
	}
}

func TestPricingOrder(t *testing.T) {
	if got := pricingOrder("createdAt"); !strings.HasPrefix(got, "pricings.created_at DESC") {
		t.Fatalf("default pricing order unexpected: %s", got)
	}
	if got := pricingOrder("zone:asc"); !strings.HasPrefix(got, "pricings.zone ASC") {
		t.Fatalf("zone:asc pricing order unexpected: %s", got)
	}
	if got := pricingOrder("zone"); !strings.HasPrefix(got, "pricings.zone DESC") {
		t.Fatalf("zone pricing order unexpected: %s", got)
	}
}

func TestContainsConditionByDialect(t *testing.T) {
	condition, arg := containsConditionByDialect("postgres", "name", "Acme")
	if condition != `name ILIKE ? ESCAPE '\'` || arg != "%Acme%" {
		t.Fatalf("postgres condition unexpected: %s %s", condition, arg)
	}
	condition, _ = containsConditionByDialect("sqlite", "name", "Acme")
	if condition != `name LIKE ? ESCAPE '\'` {
		t.Fatalf("sqlite condition unexpected: %s", condition)
	}
	_, arg = containsConditionByDialect("sqlite", "name", `50%_off\`)
	if arg != `%50\%\_off\\%` {
		t.Fatalf("wildcards should be escaped, got %s", arg)
	}
	if dbDialectName(nil) != "sqlite" {
		t.Fatalf("nil db should default to sqlite")
	}
}

func TestItemRepositoryCRUD(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewItemRepository(db)
	ctx := t.Context()

	item := &models.Item{Type: constants.ItemTypePerishable}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	count, err := repo.CountByType(ctx, constants.ItemTypePerishable, nil)
	if err != nil || count != 1 {
		t.Fatalf("count by type want 1 got %d err=%v", count, err)
	}
	count, err = repo.CountByType(ctx, constants.ItemTypePerishable, &item.ID)
	if err != nil || count != 0 {
		t.Fatalf("count excluding self want 0 got %d err=%v", count, err)
	}

	description := "fresh fruit"
	if err := repo.Update(ctx, item.ID, map[string]interface{}{"description": &description}); err != nil {
		t.Fatalf("update item failed: %v", err)
	}
	got, err := repo.GetByID(ctx, item.ID)
	if err != nil || got == nil {
		t.Fatalf("get item failed: %v", err)
	}
	if got.Type != constants.ItemTypePerishable {
		t.Fatalf("partial update should keep type, got %s", got.Type)
	}
	if got.Description == nil || *got.Description != description {
		t.Fatalf("description not updated: %v", got.Description)
	}

	missing, err := repo.GetByID(ctx, item.ID+100)
	if err != nil || missing != nil {
		t.Fatalf("missing item should be nil without error, got %v %v", missing, err)
	}

	affected, err := repo.Delete(ctx, item.ID+100)
	if err != nil || affected != 0 {
		t.Fatalf("delete missing want 0 rows got %d err=%v", affected, err)
	}
	affected, err = repo.Delete(ctx, item.ID)
	if err != nil || affected != 1 {
		t.Fatalf("delete want 1 row got %d err=%v", affected, err)
	}
}

func TestItemRepositoryDetailIncludesPricing(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewItemRepository(db)
	now := time.Now()
	org := seedOrganization(t, db, "acme", now)
	item := seedItem(t, db, constants.ItemTypeNonPerishable, now)
	seedPricing(t, db, org.ID, item.ID, "north", now)
	seedPricing(t, db, org.ID, item.ID, "south", now)

	got, err := repo.GetDetailByType(t.Context(), constants.ItemTypeNonPerishable)
	if err != nil || got == nil {
		t.Fatalf("get detail by type failed: %v", err)
	}
	if len(got.Pricings) != 2 {
		t.Fatalf("pricing rows want 2 got %d", len(got.Pricings))
	}
	if got.Pricings[0].Organization == nil || got.Pricings[0].Organization.Name != "acme" {
		t.Fatalf("pricing should include organization")
	}

	absent, err := repo.GetDetailByType(t.Context(), constants.ItemTypePerishable)
	if err != nil || absent != nil {
		t.Fatalf("absent type should be nil, got %v %v", absent, err)
	}

	items, _, err := repo.List(t.Context(), ItemListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 || len(items[0].Pricings) != 2 || items[0].Pricings[1].Organization == nil {
		t.Fatalf("list should preload pricing rows with organization: %+v", items)
	}

	orgs, _, err := NewOrganizationRepository(db).List(t.Context(), OrganizationListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list organizations failed: %v", err)
	}
	if len(orgs) != 1 || len(orgs[0].Pricings) != 2 || orgs[0].Pricings[0].Item == nil {
		t.Fatalf("organization list should preload pricing rows with item: %+v", orgs)
	}
}

func TestItemRepositoryListPaginationAndSort(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewItemRepository(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := seedItem(t, db, constants.ItemTypePerishable, base)
	newer := seedItem(t, db, constants.ItemTypeNonPerishable, base.Add(time.Hour))

	items, total, err := repo.List(t.Context(), ItemListFilter{Page: 1, PageSize: 1, SortBy: "createdAt"})
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if total != 2 || len(items) != 1 {
		t.Fatalf("want total=2 len=1 got total=%d len=%d", total, len(items))
	}
	if items[0].ID != newer.ID {
		t.Fatalf("default sort should be createdAt desc")
	}

	items, _, err = repo.List(t.Context(), ItemListFilter{Page: 1, PageSize: 10, SortBy: "createdAt:asc"})
	if err != nil {
		t.Fatalf("list items asc failed: %v", err)
	}
	if len(items) != 2 || items[0].ID != older.ID {
		t.Fatalf("asc sort should return older first")
	}

	items, total, err = repo.List(t.Context(), ItemListFilter{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if total != 2 || len(items) != 0 {
		t.Fatalf("page 2 want total=2 len=0 got total=%d len=%d", total, len(items))
	}

	items, total, err = repo.List(t.Context(), ItemListFilter{Page: 1, PageSize: 10, Type: constants.ItemTypePerishable})
	if err != nil {
		t.Fatalf("list by type failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != older.ID {
		t.Fatalf("type filter unexpected: total=%d len=%d", total, len(items))
	}
}

func TestOrganizationRepositorySearchAndSort(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrganizationRepository(db)
	now := time.Now()
	seedOrganization(t, db, "Beta Foods", now)
	seedOrganization(t, db, "alpha foods", now)
	seedOrganization(t, db, "Gamma Logistics", now)

	orgs, total, err := repo.List(t.Context(), OrganizationListFilter{Page: 1, PageSize: 10, Search: "FOODS", SortBy: "name:asc"})
	if err != nil {
		t.Fatalf("list organizations failed: %v", err)
	}
	if total != 2 || len(orgs) != 2 {
		t.Fatalf("case-insensitive search want 2 got total=%d len=%d", total, len(orgs))
	}
	if orgs[0].Name != "Beta Foods" && orgs[0].Name != "alpha foods" {
		t.Fatalf("unexpected organization %s", orgs[0].Name)
	}

	orgs, _, err = repo.List(t.Context(), OrganizationListFilter{Page: 1, PageSize: 10, SortBy: "name:desc"})
	if err != nil {
		t.Fatalf("list organizations desc failed: %v", err)
	}
	if len(orgs) != 3 {
		t.Fatalf("want 3 organizations got %d", len(orgs))
	}
	for i := 1; i < len(orgs); i++ {
		if orgs[i-1].Name < orgs[i].Name {
			t.Fatalf("name desc order broken at %d: %s < %s", i, orgs[i-1].Name, orgs[i].Name)
		}
	}

	count, err := repo.CountByName(t.Context(), "Beta Foods", nil)
	if err != nil || count != 1 {
		t.Fatalf("count by name want 1 got %d err=%v", count, err)
	}
}

func TestOrganizationRepositorySearchIsLiteral(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrganizationRepository(db)
	now := time.Now()
	seedOrganization(t, db, "acme", now)
	seedOrganization(t, db, "big_co", now)
	seedOrganization(t, db, "100% fresh", now)

	cases := []struct {
		search string
		want   string
	}{
		{search: "_", want: "big_co"},
		{search: "%", want: "100% fresh"},
		{search: "G_C", want: "big_co"},
	}
	for _, tc := range cases {
		orgs, total, err := repo.List(t.Context(), OrganizationListFilter{Page: 1, PageSize: 10, Search: tc.search})
		if err != nil {
			t.Fatalf("search %q failed: %v", tc.search, err)
		}
		if total != 1 || len(orgs) != 1 || orgs[0].Name != tc.want {
			t.Fatalf("search %q want only %s got total=%d %+v", tc.search, tc.want, total, orgs)
		}
	}

	_, total, err := repo.List(t.Context(), OrganizationListFilter{Page: 1, PageSize: 10, Search: "a_m"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("underscore must not match any single character, got %d", total)
	}
}

func TestPricingRepositoryListFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPricingRepository(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	org := seedOrganization(t, db, "acme", base)
	other := seedOrganization(t, db, "other", base)
	perishable := seedItem(t, db, constants.ItemTypePerishable, base)
	durable := seedItem(t, db, constants.ItemTypeNonPerishable, base)
	seedPricing(t, db, org.ID, perishable.ID, "Central", base)
	seedPricing(t, db, org.ID, durable.ID, "central-east", base.Add(time.Minute))
	seedPricing(t, db, other.ID, perishable.ID, "west", base.Add(2*time.Minute))

	rows, total, err := repo.List(t.Context(), PricingListFilter{Page: 1, PageSize: 10, ItemType: constants.ItemTypePerishable})
	if err != nil {
		t.Fatalf("list by item type failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("item type filter want 2 got total=%d len=%d", total, len(rows))
	}
	for _, row := range rows {
		if row.Item == nil || row.Item.Type != constants.ItemTypePerishable {
			t.Fatalf("row should carry perishable item, got %+v", row.Item)
		}
		if row.Organization == nil {
			t.Fatalf("row should carry organization")
		}
	}

	rows, total, err = repo.List(t.Context(), PricingListFilter{Page: 1, PageSize: 10, Search: "CENTRAL", OrganizationID: org.ID, SortBy: "zone:asc"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("search want 2 got total=%d len=%d", total, len(rows))
	}
	if rows[0].Zone != "Central" {
		t.Fatalf("zone:asc should put Central first, got %s", rows[0].Zone)
	}

	rows, total, err = repo.List(t.Context(), PricingListFilter{Page: 1, PageSize: 1, ItemID: perishable.ID})
	if err != nil {
		t.Fatalf("list by item id failed: %v", err)
	}
	if total != 2 || len(rows) != 1 {
		t.Fatalf("item id filter want total=2 len=1 got total=%d len=%d", total, len(rows))
	}
	if rows[0].Zone != "west" {
		t.Fatalf("default order should be createdAt desc, got %s", rows[0].Zone)
	}
}

func TestPricingRepositoryFindFirstMatch(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPricingRepository(db)
	now := time.Now()
	org := seedOrganization(t, db, "acme", now)
	perishable := seedItem(t, db, constants.ItemTypePerishable, now)
	durable := seedItem(t, db, constants.ItemTypeNonPerishable, now)
	first := seedPricing(t, db, org.ID, durable.ID, "central", now)
	second := seedPricing(t, db, org.ID, perishable.ID, "central", now)

	got, err := repo.FindFirstMatch(t.Context(), PricingMatch{Zone: "central", OrganizationID: org.ID})
	if err != nil || got == nil {
		t.Fatalf("find without item type failed: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("lowest id should win, want %d got %d", first.ID, got.ID)
	}

	got, err = repo.FindFirstMatch(t.Context(), PricingMatch{Zone: "central", OrganizationID: org.ID, ItemType: constants.ItemTypePerishable})
	if err != nil || got == nil {
		t.Fatalf("find with item type failed: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("item type filter want %d got %d", second.ID, got.ID)
	}
	if got.Item == nil || got.Item.Type != constants.ItemTypePerishable {
		t.Fatalf("matched rule should carry item")
	}

	got, err = repo.FindFirstMatch(t.Context(), PricingMatch{Zone: "unknown", OrganizationID: org.ID})
	if err != nil || got != nil {
		t.Fatalf("unknown zone should return nil, got %v %v", got, err)
	}
}

func TestPricingRepositoryPartialUpdate(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPricingRepository(db)
	now := time.Now()
	org := seedOrganization(t, db, "acme", now)
	item := seedItem(t, db, constants.ItemTypePerishable, now)
	pricing := seedPricing(t, db, org.ID, item.ID, "central", now)

	if err := repo.Update(t.Context(), pricing.ID, map[string]interface{}{"fix_price": 25.5}); err != nil {
		t.Fatalf("update pricing failed: %v", err)
	}
	got, err := repo.GetDetailByID(t.Context(), pricing.ID)
	if err != nil || got == nil {
		t.Fatalf("get pricing failed: %v", err)
	}
	if got.FixPrice != 25.5 {
		t.Fatalf("fix price want 25.5 got %v", got.FixPrice)
	}
	if got.Zone != "central" || got.BaseDistance != 5000 || got.PricePerKM != 1.5 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.Organization == nil || got.Item == nil {
		t.Fatalf("detail should carry organization and item")
	}
}
