package service

import (
	"context"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"

	"github.com/shopspring/decimal"
)

// PayoutCalculationResult 结算试算结果，金额全精度保存，View 时取整到 2 位
type PayoutCalculationResult struct {
	VendorID               uint
	PeriodStart            string
	PeriodEnd              string
	TotalSales             decimal.Decimal
	CommissionRate         decimal.Decimal
	PlatformCommission     decimal.Decimal
	CommissionGSTRate      decimal.Decimal
	CommissionGST          decimal.Decimal
	TotalCommissionWithGST decimal.Decimal
	TDSRate                decimal.Decimal
	TDSAmount              decimal.Decimal
	ReturnShippingFees     decimal.Decimal
	NetAmount              decimal.Decimal
	TotalOrders            int
	OrderIDs               []uint
	ReturnIDs              []uint
	EarliestDeliveryDate   *time.Time
	LatestDeliveryDate     *time.Time
	ScheduledPayoutDate    *time.Time
	Policy                 PayoutPolicyConfig
}

// PayoutCalculationView 试算结果对外结构
type PayoutCalculationView struct {
	VendorID               uint         `json:"vendor_id"`
	PeriodStart            string       `json:"period_start"`
	PeriodEnd              string       `json:"period_end"`
	TotalSales             models.Money `json:"total_sales"`
	PlatformCommission     models.Money `json:"platform_commission"`
	CommissionRate         float64      `json:"commission_rate"`
	CommissionGST          models.Money `json:"commission_gst"`
	CommissionGSTRate      float64      `json:"commission_gst_rate"`
	TotalCommissionWithGST models.Money `json:"total_commission_with_gst"`
	TDSAmount              models.Money `json:"tds_amount"`
	TDSRate                float64      `json:"tds_rate"`
	ReturnShippingFees     models.Money `json:"return_shipping_fees"`
	NetAmount              models.Money `json:"net_amount"`
	TotalOrders            int          `json:"total_orders"`
	OrderIDs               []uint       `json:"order_ids"`
	EarliestDeliveryDate   *time.Time   `json:"earliest_delivery_date"`
	LatestDeliveryDate     *time.Time   `json:"latest_delivery_date"`
	ScheduledPayoutDate    *string      `json:"scheduled_payout_date"`
}

// View 转换为对外结构（金额取整到 2 位）
func (r *PayoutCalculationResult) View() PayoutCalculationView {
	view := PayoutCalculationView{
		VendorID:               r.VendorID,
		PeriodStart:            r.PeriodStart,
		PeriodEnd:              r.PeriodEnd,
		TotalSales:             models.NewMoneyFromDecimal(r.TotalSales),
		PlatformCommission:     models.NewMoneyFromDecimal(r.PlatformCommission),
		CommissionRate:         r.CommissionRate.InexactFloat64(),
		CommissionGST:          models.NewMoneyFromDecimal(r.CommissionGST),
		CommissionGSTRate:      r.CommissionGSTRate.InexactFloat64(),
		TotalCommissionWithGST: models.NewMoneyFromDecimal(r.TotalCommissionWithGST),
		TDSAmount:              models.NewMoneyFromDecimal(r.TDSAmount),
		TDSRate:                r.TDSRate.InexactFloat64(),
		ReturnShippingFees:     models.NewMoneyFromDecimal(r.ReturnShippingFees),
		NetAmount:              models.NewMoneyFromDecimal(r.NetAmount),
		TotalOrders:            r.TotalOrders,
		OrderIDs:               r.OrderIDs,
		EarliestDeliveryDate:   r.EarliestDeliveryDate,
		LatestDeliveryDate:     r.LatestDeliveryDate,
		ScheduledPayoutDate:    formatOptionalDate(r.ScheduledPayoutDate),
	}
	if view.OrderIDs == nil {
		view.OrderIDs = []uint{}
	}
	return view
}

// PayoutCalculationService 结算试算服务
type PayoutCalculationService struct {
	aggregator *PayoutPeriodAggregator
	calendar   *BankHolidayCalendar
	location   *time.Location
}

// NewPayoutCalculationService 创建结算试算服务
func NewPayoutCalculationService(aggregator *PayoutPeriodAggregator, calendar *BankHolidayCalendar, loc *time.Location) *PayoutCalculationService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayoutCalculationService{
		aggregator: aggregator,
		calendar:   calendar,
		location:   loc,
	}
}

// Calculate 按结算策略试算供应商周期结算；没有签收订单时原样返回 ErrPayoutNoDeliveredOrders
func (s *PayoutCalculationService) Calculate(ctx context.Context, vendor *models.Vendor, period PayoutPeriod, policy PayoutPolicyConfig) (*PayoutCalculationResult, error) {
	if vendor == nil || vendor.ID == 0 {
		return nil, ErrVendorNotFound
	}
	aggregate, err := s.aggregator.Aggregate(vendor.ID, period)
	if err != nil {
		return nil, err
	}

	commissionRate := ResolveCommissionRate(vendor, policy)
	gstRate := decimal.NewFromFloat(policy.CommissionGSTRate)
	tdsRate := decimal.NewFromFloat(policy.TDSRate)
	breakdown := ComputeCommission(aggregate.TotalSales, commissionRate, gstRate, tdsRate)

	net := aggregate.TotalSales.
		Sub(breakdown.PlatformCommission).
		Sub(breakdown.CommissionGST).
		Sub(breakdown.TDSAmount).
		Sub(aggregate.ReturnShippingFees)

	scheduled, err := s.ScheduledPayoutDate(ctx, aggregate.LatestDeliveryDate, policy.ReturnPeriodDays)
	if err != nil {
		return nil, err
	}

	return &PayoutCalculationResult{
		VendorID:               vendor.ID,
		PeriodStart:            period.StartDate(),
		PeriodEnd:              period.EndDate(),
		TotalSales:             aggregate.TotalSales,
		CommissionRate:         commissionRate,
		PlatformCommission:     breakdown.PlatformCommission,
		CommissionGSTRate:      gstRate,
		CommissionGST:          breakdown.CommissionGST,
		TotalCommissionWithGST: breakdown.TotalCommissionWithGST,
		TDSRate:                tdsRate,
		TDSAmount:              breakdown.TDSAmount,
		ReturnShippingFees:     aggregate.ReturnShippingFees,
		NetAmount:              net,
		TotalOrders:            aggregate.TotalOrders,
		OrderIDs:               aggregate.OrderIDs,
		ReturnIDs:              aggregate.ReturnIDs,
		EarliestDeliveryDate:   aggregate.EarliestDeliveryDate,
		LatestDeliveryDate:     aggregate.LatestDeliveryDate,
		ScheduledPayoutDate:    scheduled,
		Policy:                 policy,
	}, nil
}

// ScheduledPayoutDate 最晚签收日 + 退货期 + 1 天后的首个银行工作日，无签收日时返回 nil
func (s *PayoutCalculationService) ScheduledPayoutDate(ctx context.Context, latestDelivery *time.Time, returnPeriodDays int) (*time.Time, error) {
	if latestDelivery == nil {
		return nil, nil
	}
	base := startOfDay(latestDelivery.In(s.location)).AddDate(0, 0, returnPeriodDays+1)
	scheduled, err := s.calendar.NextWorkingDay(ctx, base)
	if err != nil {
		return nil, err
	}
	return &scheduled, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(constants.DateLayout)
	return &formatted
}
