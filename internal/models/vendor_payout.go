package models

import (
	"time"
)

// VendorPayout 供应商结算单表（财务审计记录，不删除）
type VendorPayout struct {
	ID                     uint       `gorm:"primarykey" json:"id"`                                                    // 主键
	PayoutNo               string     `gorm:"uniqueIndex;not null" json:"payout_no"`                                   // 结算单号
	VendorID               uint       `gorm:"index;not null" json:"vendor_id"`                                         // 供应商ID
	Status                 string     `gorm:"type:varchar(20);index;not null" json:"status"`                           // 状态
	Currency               string     `gorm:"type:varchar(10);not null" json:"currency"`                               // 币种
	PeriodStart            string     `gorm:"type:varchar(10);index;not null" json:"period_start"`                     // 周期起始日 YYYY-MM-DD
	PeriodEnd              string     `gorm:"type:varchar(10);index;not null" json:"period_end"`                       // 周期结束日 YYYY-MM-DD
	TotalSales             Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_sales"`                // 销售总额
	CommissionRate         Rate       `gorm:"type:decimal(9,4);not null;default:0" json:"commission_rate"`             // 佣金比例
	PlatformCommission     Money      `gorm:"type:decimal(20,2);not null;default:0" json:"platform_commission"`        // 平台佣金
	CommissionGSTRate      Rate       `gorm:"type:decimal(9,4);not null;default:0" json:"commission_gst_rate"`         // 佣金 GST 比例
	CommissionGST          Money      `gorm:"type:decimal(20,2);not null;default:0" json:"commission_gst"`             // 佣金 GST
	TotalCommissionWithGST Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_commission_with_gst"`  // 佣金合计
	TDSRate                Rate       `gorm:"type:decimal(9,4);not null;default:0" json:"tds_rate"`                    // TDS 比例
	TDSAmount              Money      `gorm:"type:decimal(20,2);not null;default:0" json:"tds_amount"`                 // TDS 金额
	ReturnShippingFees     Money      `gorm:"type:decimal(20,2);not null;default:0" json:"return_shipping_fees"`       // 退货运费扣减
	AdjustmentAmount       Money      `gorm:"type:decimal(20,2);not null;default:0" json:"adjustment_amount"`          // 人工调整（可为负）
	AdjustmentReason       string     `gorm:"type:varchar(500)" json:"adjustment_reason,omitempty"`                    // 调整原因
	NetAmount              Money      `gorm:"type:decimal(20,2);not null;default:0" json:"net_amount"`                 // 应付净额
	TotalOrders            int        `gorm:"not null;default:0" json:"total_orders"`                                  // 订单数
	OrderIDs               IDList     `gorm:"type:json" json:"order_ids"`                                              // 覆盖订单
	ReturnIDs              IDList     `gorm:"type:json" json:"return_ids"`                                             // 扣减退货单
	EarliestDeliveryDate   *time.Time `json:"earliest_delivery_date"`                                                  // 最早签收时间
	LatestDeliveryDate     *time.Time `json:"latest_delivery_date"`                                                    // 最晚签收时间
	ScheduledPayoutDate    *string    `gorm:"type:varchar(10);index" json:"scheduled_payout_date"`                     // 计划付款日
	BankAccountHolderName  string     `gorm:"type:varchar(120)" json:"bank_account_holder_name"`                       // 账户快照：开户名
	BankAccountNumber      string     `gorm:"type:varchar(64)" json:"bank_account_number"`                             // 账户快照：账号
	BankIFSCCode           string     `gorm:"type:varchar(20)" json:"bank_ifsc_code"`                                  // 账户快照：IFSC
	BankName               string     `gorm:"type:varchar(120)" json:"bank_name"`                                      // 账户快照：开户行
	PaymentMethod          string     `gorm:"type:varchar(40)" json:"payment_method,omitempty"`                        // 付款方式
	PaymentReference       string     `gorm:"type:varchar(120);index" json:"payment_reference,omitempty"`              // 付款流水号
	PaymentGateway         string     `gorm:"type:varchar(60)" json:"payment_gateway,omitempty"`                       // 付款渠道
	PaymentResponse        JSON       `gorm:"type:json" json:"payment_response,omitempty"`                             // 渠道回执
	AdminNotes             string     `gorm:"type:text" json:"admin_notes,omitempty"`                                  // 管理员备注
	CreatedBy              uint       `gorm:"index" json:"created_by,omitempty"`                                       // 创建人
	ProcessedBy            uint       `gorm:"index" json:"processed_by,omitempty"`                                     // 处理人
	ProcessedAt            *time.Time `json:"processed_at"`                                                            // 开始处理时间
	CompletedAt            *time.Time `gorm:"index" json:"completed_at"`                                               // 完成时间
	FailedAt               *time.Time `json:"failed_at"`                                                               // 失败时间
	FailureReason          string     `gorm:"type:varchar(500)" json:"failure_reason,omitempty"`                       // 失败原因
	CreatedAt              time.Time  `gorm:"index" json:"created_at"`                                                 // 创建时间
	UpdatedAt              time.Time  `json:"updated_at"`                                                              // 更新时间

	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

// TableName 指定表名
func (VendorPayout) TableName() string {
	return "vendor_payouts"
}
