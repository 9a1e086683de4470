package service

import (
	"context"
	"strings"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// 动态计价结果标签
const (
	CalculationMatched   = "matched"
	CalculationUnmatched = "unmatched"
	CalculationFailed    = "error"
)

// CalculationRecorder 动态计价观察者（指标上报）
type CalculationRecorder interface {
	RecordCalculation(result, itemType string)
}

// PricingService 计价规则与动态计价服务
type PricingService struct {
	repo     repository.PricingRepository
	orgRepo  repository.OrganizationRepository
	itemRepo repository.ItemRepository
	recorder CalculationRecorder
}

// NewPricingService 创建计价服务
func NewPricingService(repo repository.PricingRepository, orgRepo repository.OrganizationRepository, itemRepo repository.ItemRepository) *PricingService {
	return &PricingService{
		repo:     repo,
		orgRepo:  orgRepo,
		itemRepo: itemRepo,
	}
}

// SetRecorder 设置动态计价观察者，nil 表示不上报
func (s *PricingService) SetRecorder(recorder CalculationRecorder) {
	s.recorder = recorder
}

// CreatePricingInput 创建计价规则输入
type CreatePricingInput struct {
	OrganizationID uint
	ItemID         uint
	Zone           string
	BaseDistance   float64
	PricePerKM     float64
	FixPrice       float64
}

// UpdatePricingInput 更新计价规则输入，nil 字段保持不变
type UpdatePricingInput struct {
	OrganizationID *uint
	ItemID         *uint
	Zone           *string
	BaseDistance   *float64
	PricePerKM     *float64
	FixPrice       *float64
}

// PricingListInput 计价规则列表输入
type PricingListInput struct {
	Page           int
	PageSize       int
	Search         string
	SortBy         string
	ItemID         uint
	OrganizationID uint
	ItemType       string
}

// DynamicPriceInput 动态计价输入，距离单位为米
type DynamicPriceInput struct {
	Zone           string
	OrganizationID uint
	ItemType       string
	TotalDistance  float64
}

// Create 创建计价规则，组织与物品并发校验，返回新规则 ID
func (s *PricingService) Create(ctx context.Context, input CreatePricingInput) (uint, error) {
	if err := s.ensureReferences(ctx, &input.OrganizationID, &input.ItemID); err != nil {
		return 0, err
	}

	pricing := models.Pricing{
		OrganizationID: input.OrganizationID,
		ItemID:         input.ItemID,
		Zone:           strings.TrimSpace(input.Zone),
		BaseDistance:   input.BaseDistance,
		PricePerKM:     input.PricePerKM,
		FixPrice:       input.FixPrice,
	}
	if err := s.repo.Create(ctx, &pricing); err != nil {
		return 0, s.translateReferenceErr(ctx, err, &input.OrganizationID, &input.ItemID)
	}
	return pricing.ID, nil
}

// GetByID 获取计价规则详情
func (s *PricingService) GetByID(ctx context.Context, id uint) (*models.Pricing, error) {
	pricing, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pricing == nil {
		return nil, ErrPricingNotFound
	}
	return pricing, nil
}

// List 计价规则列表
func (s *PricingService) List(ctx context.Context, input PricingListInput) ([]models.Pricing, int64, error) {
	return s.repo.List(ctx, repository.PricingListFilter{
		Page:           input.Page,
		PageSize:       input.PageSize,
		Search:         input.Search,
		SortBy:         input.SortBy,
		ItemID:         input.ItemID,
		OrganizationID: input.OrganizationID,
		ItemType:       strings.TrimSpace(input.ItemType),
	})
}

// Update 局部更新计价规则；仅校验提交了的组织/物品引用
func (s *PricingService) Update(ctx context.Context, id uint, input UpdatePricingInput) error {
	pricing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pricing == nil {
		return ErrPricingNotFound
	}
	if err := s.ensureReferences(ctx, input.OrganizationID, input.ItemID); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if input.OrganizationID != nil {
		updates["organization_id"] = *input.OrganizationID
	}
	if input.ItemID != nil {
		updates["item_id"] = *input.ItemID
	}
	if input.Zone != nil {
		updates["zone"] = strings.TrimSpace(*input.Zone)
	}
	if input.BaseDistance != nil {
		updates["base_distance"] = *input.BaseDistance
	}
	if input.PricePerKM != nil {
		updates["price_per_km"] = *input.PricePerKM
	}
	if input.FixPrice != nil {
		updates["fix_price"] = *input.FixPrice
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return s.translateReferenceErr(ctx, err, input.OrganizationID, input.ItemID)
	}
	return nil
}

// Delete 删除计价规则
func (s *PricingService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPricingNotFound
	}
	return nil
}

// ComputeDynamicPrice 匹配第一条规则并计算配送价格
func (s *PricingService) ComputeDynamicPrice(ctx context.Context, input DynamicPriceInput) (float64, error) {
	itemType := strings.TrimSpace(input.ItemType)
	if input.TotalDistance < 0 {
		s.record(CalculationFailed, itemType)
		return 0, ErrInvalidDistance
	}

	rule, err := s.repo.FindFirstMatch(ctx, repository.PricingMatch{
		Zone:           strings.TrimSpace(input.Zone),
		OrganizationID: input.OrganizationID,
		ItemType:       itemType,
	})
	if err != nil {
		s.record(CalculationFailed, itemType)
		return 0, err
	}
	if rule == nil {
		s.record(CalculationUnmatched, itemType)
		return 0, ErrPricingNotCalculable
	}

	s.record(CalculationMatched, itemType)
	return CalculatePrice(*rule, input.TotalDistance), nil
}

// CalculatePrice 起步距离内收取固定价，超出部分按公里计价：
// fixPrice + (totalDistance - baseDistance) / 1000 * pricePerKM，不做舍入
func CalculatePrice(rule models.Pricing, totalDistance float64) float64 {
	if totalDistance <= rule.BaseDistance {
		return rule.FixPrice
	}
	extraKM := decimal.NewFromFloat(totalDistance).
		Sub(decimal.NewFromFloat(rule.BaseDistance)).
		Div(decimal.NewFromInt(constants.MetersPerKilometer))
	total := decimal.NewFromFloat(rule.FixPrice).Add(extraKM.Mul(decimal.NewFromFloat(rule.PricePerKM)))
	result, _ := total.Float64()
	return result
}

// ensureReferences 并发校验组织与物品是否存在；两个查询都会执行，失败合并返回
func (s *PricingService) ensureReferences(ctx context.Context, organizationID, itemID *uint) error {
	p := pool.New().WithErrors()
	if organizationID != nil {
		id := *organizationID
		p.Go(func() error {
			org, err := s.orgRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if org == nil {
				return ErrOrganizationNotFound
			}
			return nil
		})
	}
	if itemID != nil {
		id := *itemID
		p.Go(func() error {
			item, err := s.itemRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if item == nil {
				return ErrItemNotFound
			}
			return nil
		})
	}
	return p.Wait()
}

// translateReferenceErr 引用在校验后被删除时，外键错误转换为对应的不存在错误
func (s *PricingService) translateReferenceErr(ctx context.Context, err error, organizationID, itemID *uint) error {
	if !repository.IsForeignKeyErr(err) {
		return err
	}
	if refErr := s.ensureReferences(ctx, organizationID, itemID); refErr != nil {
		return refErr
	}
	return err
}

func (s *PricingService) record(result, itemType string) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordCalculation(result, itemType)
}
