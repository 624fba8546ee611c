package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/repository"
)

const defaultPayoutTimezone = "Asia/Kolkata"

// PayoutPeriod 结算周期，起止日期均包含在内
type PayoutPeriod struct {
	Start time.Time
	End   time.Time
}

// ParsePayoutPeriod 解析 YYYY-MM-DD 起止日期
func ParsePayoutPeriod(start, end string, loc *time.Location) (PayoutPeriod, error) {
	if loc == nil {
		loc = time.UTC
	}
	startAt, err := time.ParseInLocation(constants.DateLayout, strings.TrimSpace(start), loc)
	if err != nil {
		return PayoutPeriod{}, fmt.Errorf("%w: period_start %q", ErrPeriodInvalid, start)
	}
	endAt, err := time.ParseInLocation(constants.DateLayout, strings.TrimSpace(end), loc)
	if err != nil {
		return PayoutPeriod{}, fmt.Errorf("%w: period_end %q", ErrPeriodInvalid, end)
	}
	if endAt.Before(startAt) {
		return PayoutPeriod{}, fmt.Errorf("%w: period_end before period_start", ErrPeriodInvalid)
	}
	return PayoutPeriod{Start: startAt, End: endAt}, nil
}

// Window 返回 [起始日 00:00, 结束日次日 00:00)
func (p PayoutPeriod) Window() repository.TimeWindow {
	return repository.TimeWindow{
		From: startOfDay(p.Start),
		To:   startOfDay(p.End).AddDate(0, 0, 1),
	}
}

// StartDate 起始日期字符串
func (p PayoutPeriod) StartDate() string {
	return p.Start.Format(constants.DateLayout)
}

// EndDate 结束日期字符串
func (p PayoutPeriod) EndDate() string {
	return p.End.Format(constants.DateLayout)
}

// LoadPayoutLocation 加载结算时区，失败时回退 UTC+05:30
func LoadPayoutLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPayoutTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// ParseDate 按结算时区解析单个日期
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(constants.DateLayout, strings.TrimSpace(raw), loc)
}
