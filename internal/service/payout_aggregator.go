package service

import (
	"sort"
	"time"

	"github.com/vendorhub/payout/internal/repository"

	"github.com/shopspring/decimal"
)

// PayoutAggregate 周期内供应商的签收销售与退货运费汇总
type PayoutAggregate struct {
	TotalSales           decimal.Decimal
	TotalOrders          int
	OrderIDs             []uint
	ReturnIDs            []uint
	EarliestDeliveryDate *time.Time
	LatestDeliveryDate   *time.Time
	ReturnShippingFees   decimal.Decimal
}

// PayoutPeriodAggregator 结算周期聚合器
type PayoutPeriodAggregator struct {
	orderRepo repository.OrderRepository
}

// NewPayoutPeriodAggregator 创建聚合器
func NewPayoutPeriodAggregator(orderRepo repository.OrderRepository) *PayoutPeriodAggregator {
	return &PayoutPeriodAggregator{orderRepo: orderRepo}
}

// Aggregate 汇总周期内已签收订单项；没有订单时返回 ErrPayoutNoDeliveredOrders。
// 退货运费按退款完成时间取同一窗口，与签收时间互不影响。
func (a *PayoutPeriodAggregator) Aggregate(vendorID uint, period PayoutPeriod) (*PayoutAggregate, error) {
	window := period.Window()
	items, err := a.orderRepo.ListDeliveredItemsByVendor(vendorID, window)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrPayoutNoDeliveredOrders
	}

	result := &PayoutAggregate{
		TotalSales:         decimal.Zero,
		ReturnShippingFees: decimal.Zero,
	}
	seen := make(map[uint]struct{})
	for _, item := range items {
		result.TotalSales = result.TotalSales.Add(item.TotalAmount.Decimal)
		if _, ok := seen[item.OrderID]; ok {
			continue
		}
		seen[item.OrderID] = struct{}{}
		result.OrderIDs = append(result.OrderIDs, item.OrderID)

		if item.Order == nil || item.Order.DeliveredAt == nil {
			continue
		}
		deliveredAt := *item.Order.DeliveredAt
		if result.EarliestDeliveryDate == nil || deliveredAt.Before(*result.EarliestDeliveryDate) {
			earliest := deliveredAt
			result.EarliestDeliveryDate = &earliest
		}
		if result.LatestDeliveryDate == nil || deliveredAt.After(*result.LatestDeliveryDate) {
			latest := deliveredAt
			result.LatestDeliveryDate = &latest
		}
	}
	sort.Slice(result.OrderIDs, func(i, j int) bool { return result.OrderIDs[i] < result.OrderIDs[j] })
	result.TotalOrders = len(result.OrderIDs)

	returns, err := a.orderRepo.ListRefundedCustomerReturns(vendorID, window)
	if err != nil {
		return nil, err
	}
	for _, ret := range returns {
		result.ReturnShippingFees = result.ReturnShippingFees.Add(ret.ReturnShippingFee.Decimal)
		result.ReturnIDs = append(result.ReturnIDs, ret.ID)
	}
	return result, nil
}
