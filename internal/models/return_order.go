package models

import (
	"time"
)

// ReturnOrder 退货单表
type ReturnOrder struct {
	ID                uint       `gorm:"primarykey" json:"id"`                                             // 主键
	ReturnNo          string     `gorm:"uniqueIndex;not null" json:"return_no"`                            // 退货单号
	OrderID           uint       `gorm:"index;not null" json:"order_id"`                                   // 原订单ID
	VendorID          uint       `gorm:"index;not null" json:"vendor_id"`                                  // 供应商ID
	Status            string     `gorm:"index;not null" json:"status"`                                     // 状态
	IsCustomerReturn  bool       `gorm:"not null;default:false" json:"is_customer_return"`                 // 是否买家主动退货
	ReturnShippingFee Money      `gorm:"type:decimal(20,2);not null;default:0" json:"return_shipping_fee"` // 退货运费
	RefundAmount      Money      `gorm:"type:decimal(20,2);not null;default:0" json:"refund_amount"`       // 退款金额
	RefundCompletedAt *time.Time `gorm:"index" json:"refund_completed_at"`                                 // 退款完成时间
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt         time.Time  `json:"updated_at"`                                                       // 更新时间
}

// TableName 指定表名
func (ReturnOrder) TableName() string {
	return "return_orders"
}
