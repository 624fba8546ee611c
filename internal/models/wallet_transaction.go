package models

import (
	"time"
)

// WalletTransaction 钱包流水（只追加，不修改不删除）
type WalletTransaction struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                        // 主键
	VendorID      uint      `gorm:"index;not null" json:"vendor_id"`                             // 供应商ID
	Type          string    `gorm:"type:varchar(20);index;not null" json:"type"`                 // credit / debit
	Category      string    `gorm:"type:varchar(40);index;not null" json:"category"`             // 分类
	Amount        Money     `gorm:"type:decimal(20,2);not null" json:"amount"`                   // 金额
	BalanceBefore Money     `gorm:"type:decimal(20,2);not null" json:"balance_before"`           // 变更前余额
	BalanceAfter  Money     `gorm:"type:decimal(20,2);not null" json:"balance_after"`            // 变更后余额
	Currency      string    `gorm:"type:varchar(10);not null" json:"currency"`                   // 币种
	ReferenceType string    `gorm:"type:varchar(40);index" json:"reference_type"`                // 关联类型
	ReferenceID   uint      `gorm:"index" json:"reference_id"`                                   // 关联ID
	Reference     string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"reference"`     // 幂等引用
	Description   string    `gorm:"type:varchar(255)" json:"description"`                        // 描述
	Metadata      JSON      `gorm:"type:json" json:"metadata,omitempty"`                         // 扩展信息
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
}

// TableName 指定表名
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
