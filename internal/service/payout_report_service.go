package service

import (
	"fmt"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	financialYearMin = 2000
	financialYearMax = 2100
)

// PayoutReportService 已完成结算单的 TDS 与平台收入统计
type PayoutReportService struct {
	payoutRepo repository.PayoutRepository
	location   *time.Location
}

// TDSQuarterSummary 单个季度 TDS 汇总
type TDSQuarterSummary struct {
	Quarter     string       `json:"quarter"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	PayoutCount int          `json:"payout_count"`
	TotalSales  models.Money `json:"total_sales"`
	TDSAmount   models.Money `json:"tds_amount"`
	NetPaid     models.Money `json:"net_paid"`
}

// TDSSummary 财年 TDS 汇总（印度财年 4 月起，Q1 为 4-6 月）
type TDSSummary struct {
	VendorID      uint                `json:"vendor_id,omitempty"`
	FinancialYear string              `json:"financial_year"`
	Quarters      []TDSQuarterSummary `json:"quarters"`
	TotalSales    models.Money        `json:"total_sales"`
	TotalTDS      models.Money        `json:"total_tds"`
}

// RevenueSummary 平台收入汇总
type RevenueSummary struct {
	From                   string       `json:"from"`
	To                     string       `json:"to"`
	PayoutCount            int          `json:"payout_count"`
	TotalSales             models.Money `json:"total_sales"`
	PlatformCommission     models.Money `json:"platform_commission"`
	CommissionGST          models.Money `json:"commission_gst"`
	TotalCommissionWithGST models.Money `json:"total_commission_with_gst"`
	TDSCollected           models.Money `json:"tds_collected"`
	ReturnShippingFees     models.Money `json:"return_shipping_fees"`
	Adjustments            models.Money `json:"adjustments"`
	NetPaid                models.Money `json:"net_paid"`
}

// NewPayoutReportService 创建报表服务
func NewPayoutReportService(payoutRepo repository.PayoutRepository, loc *time.Location) *PayoutReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayoutReportService{payoutRepo: payoutRepo, location: loc}
}

// TDSSummary 按完成时间把已完成结算单归入财年季度
func (s *PayoutReportService) TDSSummary(vendorID uint, financialYear int) (*TDSSummary, error) {
	if financialYear < financialYearMin || financialYear > financialYearMax {
		return nil, fmt.Errorf("%w: %d", ErrFinancialYearInvalid, financialYear)
	}
	fyStart := time.Date(financialYear, time.April, 1, 0, 0, 0, 0, s.location)
	fyEnd := fyStart.AddDate(1, 0, 0)
	payouts, err := s.payoutRepo.ListCompleted(repository.CompletedPayoutFilter{
		VendorID:      vendorID,
		CompletedFrom: &fyStart,
		CompletedTo:   &fyEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayoutFetchFailed, err)
	}

	type bucket struct {
		count int
		sales decimal.Decimal
		tds   decimal.Decimal
		net   decimal.Decimal
	}
	buckets := make([]bucket, 4)
	for i := range buckets {
		buckets[i] = bucket{sales: decimal.Zero, tds: decimal.Zero, net: decimal.Zero}
	}
	totalSales := decimal.Zero
	totalTDS := decimal.Zero
	for _, payout := range payouts {
		idx := financialQuarterIndex(payout.CompletedAt.In(s.location))
		buckets[idx].count++
		buckets[idx].sales = buckets[idx].sales.Add(payout.TotalSales.Decimal)
		buckets[idx].tds = buckets[idx].tds.Add(payout.TDSAmount.Decimal)
		buckets[idx].net = buckets[idx].net.Add(payout.NetAmount.Decimal)
		totalSales = totalSales.Add(payout.TotalSales.Decimal)
		totalTDS = totalTDS.Add(payout.TDSAmount.Decimal)
	}

	summary := &TDSSummary{
		VendorID:      vendorID,
		FinancialYear: fmt.Sprintf("%d-%02d", financialYear, (financialYear+1)%100),
		Quarters:      make([]TDSQuarterSummary, 0, 4),
		TotalSales:    models.NewMoneyFromDecimal(totalSales),
		TotalTDS:      models.NewMoneyFromDecimal(totalTDS),
	}
	for i, b := range buckets {
		from := fyStart.AddDate(0, 3*i, 0)
		to := from.AddDate(0, 3, -1)
		summary.Quarters = append(summary.Quarters, TDSQuarterSummary{
			Quarter:     fmt.Sprintf("Q%d", i+1),
			From:        from.Format(constants.DateLayout),
			To:          to.Format(constants.DateLayout),
			PayoutCount: b.count,
			TotalSales:  models.NewMoneyFromDecimal(b.sales),
			TDSAmount:   models.NewMoneyFromDecimal(b.tds),
			NetPaid:     models.NewMoneyFromDecimal(b.net),
		})
	}
	return summary, nil
}

// RevenueSummary 统计 [from, to] 日期内完成的结算单
func (s *PayoutReportService) RevenueSummary(from, to string) (*RevenueSummary, error) {
	period, err := ParsePayoutPeriod(from, to, s.location)
	if err != nil {
		return nil, err
	}
	window := period.Window()
	payouts, err := s.payoutRepo.ListCompleted(repository.CompletedPayoutFilter{
		CompletedFrom: &window.From,
		CompletedTo:   &window.To,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayoutFetchFailed, err)
	}

	sales, commission, gst, tds, fees, adjustments, net := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, payout := range payouts {
		sales = sales.Add(payout.TotalSales.Decimal)
		commission = commission.Add(payout.PlatformCommission.Decimal)
		gst = gst.Add(payout.CommissionGST.Decimal)
		tds = tds.Add(payout.TDSAmount.Decimal)
		fees = fees.Add(payout.ReturnShippingFees.Decimal)
		adjustments = adjustments.Add(payout.AdjustmentAmount.Decimal)
		net = net.Add(payout.NetAmount.Decimal)
	}
	return &RevenueSummary{
		From:                   period.StartDate(),
		To:                     period.EndDate(),
		PayoutCount:            len(payouts),
		TotalSales:             models.NewMoneyFromDecimal(sales),
		PlatformCommission:     models.NewMoneyFromDecimal(commission),
		CommissionGST:          models.NewMoneyFromDecimal(gst),
		TotalCommissionWithGST: models.NewMoneyFromDecimal(commission.Add(gst)),
		TDSCollected:           models.NewMoneyFromDecimal(tds),
		ReturnShippingFees:     models.NewMoneyFromDecimal(fees),
		Adjustments:            models.NewMoneyFromDecimal(adjustments),
		NetPaid:                models.NewMoneyFromDecimal(net),
	}, nil
}

// financialQuarterIndex 4-6 月为 0，1-3 月为 3
func financialQuarterIndex(t time.Time) int {
	month := int(t.Month())
	return ((month + 8) % 12) / 3
}

// CurrentFinancialYear 返回日期所在财年的起始年份
func CurrentFinancialYear(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}
