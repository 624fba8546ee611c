package repository

import (
	"sort"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单与退货单只读访问接口（结算聚合使用）
type OrderRepository interface {
	ListDeliveredItemsByVendor(vendorID uint, window TimeWindow) ([]models.OrderItem, error)
	ListRefundedCustomerReturns(vendorID uint, window TimeWindow) ([]models.ReturnOrder, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// ListDeliveredItemsByVendor 查询窗口内已签收且未被结算占用的订单项
func (r *GormOrderRepository) ListDeliveredItemsByVendor(vendorID uint, window TimeWindow) ([]models.OrderItem, error) {
	if vendorID == 0 {
		return []models.OrderItem{}, nil
	}
	from, to := window.widen()
	claimed := r.db.Model(&models.PayoutClaim{}).
		Select("source_id").
		Where("vendor_id = ? AND source_type = ?", vendorID, constants.PayoutClaimSourceOrder)

	var items []models.OrderItem
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Where("order_items.vendor_id = ?", vendorID).
		Where("orders.status = ?", constants.OrderStatusDelivered).
		Where("orders.delivered_at IS NOT NULL AND orders.delivered_at >= ? AND orders.delivered_at < ?", from, to).
		Where("order_items.order_id NOT IN (?)", claimed).
		Preload("Order").
		Order("order_items.id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Order == nil || item.Order.DeliveredAt == nil {
			continue
		}
		if !window.Contains(*item.Order.DeliveredAt) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// ListRefundedCustomerReturns 查询窗口内退款完成且未被结算占用的买家退货单
func (r *GormOrderRepository) ListRefundedCustomerReturns(vendorID uint, window TimeWindow) ([]models.ReturnOrder, error) {
	if vendorID == 0 {
		return []models.ReturnOrder{}, nil
	}
	from, to := window.widen()
	claimed := r.db.Model(&models.PayoutClaim{}).
		Select("source_id").
		Where("vendor_id = ? AND source_type = ?", vendorID, constants.PayoutClaimSourceReturn)

	var returns []models.ReturnOrder
	err := r.db.Model(&models.ReturnOrder{}).
		Where("vendor_id = ? AND is_customer_return = ?", vendorID, true).
		Where("status IN ?", []string{constants.ReturnStatusRefundCompleted, constants.ReturnStatusCompleted}).
		Where("refund_completed_at IS NOT NULL AND refund_completed_at >= ? AND refund_completed_at < ?", from, to).
		Where("id NOT IN (?)", claimed).
		Find(&returns).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.ReturnOrder, 0, len(returns))
	for _, ret := range returns {
		if ret.RefundCompletedAt == nil || !window.Contains(*ret.RefundCompletedAt) {
			continue
		}
		result = append(result, ret)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
