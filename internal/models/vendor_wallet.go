package models

import (
	"time"
)

// VendorWallet 供应商钱包余额投影，首次结算完成时创建
type VendorWallet struct {
	ID               uint       `gorm:"primarykey" json:"id"`                                              // 主键
	VendorID         uint       `gorm:"uniqueIndex;not null" json:"vendor_id"`                             // 供应商ID
	Currency         string     `gorm:"type:varchar(10);not null" json:"currency"`                         // 币种
	AvailableBalance Money      `gorm:"type:decimal(20,2);not null;default:0" json:"available_balance"`    // 可用余额
	PendingBalance   Money      `gorm:"type:decimal(20,2);not null;default:0" json:"pending_balance"`      // 待结算余额
	TotalEarned      Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_earned"`         // 累计收入
	TotalWithdrawn   Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_withdrawn"`      // 累计已付
	LastPayoutAt     *time.Time `json:"last_payout_at"`                                                    // 最近付款时间
	LastPayoutAmount Money      `gorm:"type:decimal(20,2);not null;default:0" json:"last_payout_amount"`   // 最近付款金额
	CreatedAt        time.Time  `json:"created_at"`                                                        // 创建时间
	UpdatedAt        time.Time  `json:"updated_at"`                                                        // 更新时间
}

// TableName 指定表名
func (VendorWallet) TableName() string {
	return "vendor_wallets"
}
