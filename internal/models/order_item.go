package models

import (
	"time"
)

// OrderItem 订单项表，每一行归属唯一供应商
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID     uint      `gorm:"index;not null" json:"order_id"`                            // 订单ID
	VendorID    uint      `gorm:"index;not null" json:"vendor_id"`                           // 供应商ID
	ProductName string    `gorm:"type:varchar(255)" json:"product_name"`                     // 商品名称快照
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`   // 单价
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`                        // 数量
	TotalAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 行金额
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                // 更新时间

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
