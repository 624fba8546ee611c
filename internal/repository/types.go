package repository

import "time"

// VendorListFilter 查询供应商列表的过滤条件
type VendorListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// PayoutListFilter 查询结算单列表的过滤条件
type PayoutListFilter struct {
	Page        int
	PageSize    int
	VendorID    uint
	Status      string
	PayoutNo    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CompletedPayoutFilter 已完成结算单的统计口径（按完成时间）
type CompletedPayoutFilter struct {
	VendorID      uint
	CompletedFrom *time.Time
	CompletedTo   *time.Time
}

// WalletTransactionListFilter 查询钱包流水的过滤条件
type WalletTransactionListFilter struct {
	Page        int
	PageSize    int
	VendorID    uint
	Type        string
	Category    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// BankHolidayListFilter 查询银行假日的过滤条件
type BankHolidayListFilter struct {
	FromDate string
	ToDate   string
}

// TimeWindow 左闭右开的时间窗口 [From, To)
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// Contains 判断时间是否落在窗口内
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// widen 返回前后各放宽一天的 UTC 边界。
// sqlite 以带时区偏移的文本存储时间，跨偏移的字符串比较不精确，查询后在内存中按 Contains 精确过滤。
func (w TimeWindow) widen() (time.Time, time.Time) {
	return w.From.AddDate(0, 0, -1).UTC(), w.To.AddDate(0, 0, 1).UTC()
}
