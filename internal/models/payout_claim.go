package models

import "time"

// PayoutClaim 结算占用表：订单或退货单被某个未失败结算单覆盖
type PayoutClaim struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	VendorID   uint      `gorm:"not null;uniqueIndex:idx_payout_claim_source,priority:1" json:"vendor_id"`
	SourceType string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_payout_claim_source,priority:2" json:"source_type"`
	SourceID   uint      `gorm:"not null;uniqueIndex:idx_payout_claim_source,priority:3" json:"source_id"`
	PayoutID   uint      `gorm:"index;not null" json:"payout_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName 指定表名
func (PayoutClaim) TableName() string {
	return "payout_claims"
}
