package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vendorhub/payout/internal/constants"
)

const defaultHolidayLookaheadDays = 30

// HolidaySource 银行假日日期集合来源（YYYY-MM-DD）
type HolidaySource interface {
	HolidayDates(ctx context.Context) (map[string]struct{}, error)
}

// StaticHolidaySource 固定假日集合
type StaticHolidaySource map[string]struct{}

// NewStaticHolidaySource 由日期列表构建固定假日集合
func NewStaticHolidaySource(dates ...string) StaticHolidaySource {
	source := make(StaticHolidaySource, len(dates))
	for _, date := range dates {
		source[date] = struct{}{}
	}
	return source
}

// HolidayDates 返回假日集合
func (s StaticHolidaySource) HolidayDates(context.Context) (map[string]struct{}, error) {
	return s, nil
}

// BankHolidayCalendar 银行工作日日历
type BankHolidayCalendar struct {
	source        HolidaySource
	lookaheadDays int
}

// NewBankHolidayCalendar 创建工作日日历，lookaheadDays<=0 时取 30
func NewBankHolidayCalendar(source HolidaySource, lookaheadDays int) *BankHolidayCalendar {
	if lookaheadDays <= 0 {
		lookaheadDays = defaultHolidayLookaheadDays
	}
	return &BankHolidayCalendar{
		source:        source,
		lookaheadDays: lookaheadDays,
	}
}

// NextWorkingDay 返回不早于 date 的首个银行工作日（日期粒度，保留 date 的时区）。
// 连续 lookaheadDays 天都不是工作日时返回 ErrHolidayLookaheadExceeded。
func (c *BankHolidayCalendar) NextWorkingDay(ctx context.Context, date time.Time) (time.Time, error) {
	holidays, err := c.holidays(ctx)
	if err != nil {
		return time.Time{}, err
	}
	candidate := startOfDay(date)
	for i := 0; i <= c.lookaheadDays; i++ {
		if isWorkingDay(candidate, holidays) {
			return candidate, nil
		}
		candidate = candidate.AddDate(0, 0, 1)
	}
	return time.Time{}, fmt.Errorf("%w: no working day within %d days after %s",
		ErrHolidayLookaheadExceeded, c.lookaheadDays, startOfDay(date).Format(constants.DateLayout))
}

// IsWorkingDay 判断是否银行工作日
func (c *BankHolidayCalendar) IsWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	holidays, err := c.holidays(ctx)
	if err != nil {
		return false, err
	}
	return isWorkingDay(startOfDay(date), holidays), nil
}

func (c *BankHolidayCalendar) holidays(ctx context.Context) (map[string]struct{}, error) {
	if c == nil || c.source == nil {
		return map[string]struct{}{}, nil
	}
	holidays, err := c.source.HolidayDates(ctx)
	if err != nil {
		return nil, err
	}
	if holidays == nil {
		return map[string]struct{}{}, nil
	}
	return holidays, nil
}

func isWorkingDay(day time.Time, holidays map[string]struct{}) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := holidays[day.Format(constants.DateLayout)]
	return !holiday
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
