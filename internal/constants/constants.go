package constants

// 订单状态常量（只读，来自订单系统）
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 退货单状态常量
const (
	ReturnStatusRequested       = "requested"
	ReturnStatusPickedUp        = "picked_up"
	ReturnStatusRefundCompleted = "refund_completed"
	ReturnStatusCompleted       = "completed"
	ReturnStatusRejected        = "rejected"
)

// 结算单状态常量
const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusCompleted  = "completed"
	PayoutStatusFailed     = "failed"
)

// 结算占用来源类型
const (
	PayoutClaimSourceOrder  = "order"
	PayoutClaimSourceReturn = "return"
)

// 供应商状态常量
const (
	VendorStatusPending  = "pending"
	VendorStatusApproved = "approved"
	VendorStatusBlocked  = "blocked"
)

// 钱包流水类型常量
const (
	WalletTxnTypeCredit = "credit"
	WalletTxnTypeDebit  = "debit"
)

// 钱包流水分类常量
const (
	WalletTxnCategoryPayout = "payout"
)

// 流水关联类型常量
const (
	WalletReferenceTypePayout = "vendor_payout"
)

// 设置键常量
const (
	SettingKeyPayoutPolicy = "payout_policy"
)

// 设置字段常量
const (
	SettingFieldDefaultCommissionRate = "default_commission_rate"
	SettingFieldCommissionGSTRate     = "commission_gst_rate"
	SettingFieldTDSRate               = "tds_rate"
	SettingFieldReturnPeriodDays      = "return_period_days"
)

// 队列与任务常量
const (
	QueueDefault            = "default"
	QueueCritical           = "critical"
	TaskPayoutStatusNotify  = "payout:status_notify"
	PayoutNumberPrefix      = "VP"
	DefaultPayoutCurrency   = "INR"
	DateLayout              = "2006-01-02"
	HolidayCacheKey         = "bank_holidays:all"
	PayoutPaymentMethodBank = "bank_transfer"
)
