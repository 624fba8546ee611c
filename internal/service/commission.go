package service

import (
	"github.com/vendorhub/payout/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CommissionBreakdown 佣金拆分结果（全精度，展示时再取整）
type CommissionBreakdown struct {
	PlatformCommission     decimal.Decimal
	CommissionGST          decimal.Decimal
	TotalCommissionWithGST decimal.Decimal
	TDSAmount              decimal.Decimal
}

// ComputeCommission 按百分比计算平台佣金、佣金 GST 与 TDS。
// TDS 基于销售总额计算，不基于佣金。
func ComputeCommission(totalSales, commissionRate, commissionGSTRate, tdsRate decimal.Decimal) CommissionBreakdown {
	commission := totalSales.Mul(commissionRate).Div(hundred)
	gst := commission.Mul(commissionGSTRate).Div(hundred)
	return CommissionBreakdown{
		PlatformCommission:     commission,
		CommissionGST:          gst,
		TotalCommissionWithGST: commission.Add(gst),
		TDSAmount:              totalSales.Mul(tdsRate).Div(hundred),
	}
}

// ResolveCommissionRate 供应商设置了佣金比例时使用该比例，否则使用平台默认比例
func ResolveCommissionRate(vendor *models.Vendor, policy PayoutPolicyConfig) decimal.Decimal {
	if vendor != nil && vendor.CommissionPercentage != nil {
		return decimal.NewFromFloat(*vendor.CommissionPercentage)
	}
	return decimal.NewFromFloat(policy.DefaultCommissionRate)
}
