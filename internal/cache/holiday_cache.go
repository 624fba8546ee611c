package cache

import (
	"context"
	"time"

	"github.com/vendorhub/payout/internal/constants"
)

const defaultHolidayCacheTTL = time.Hour

// HolidaySnapshot 银行假日日期快照（YYYY-MM-DD 升序）
type HolidaySnapshot struct {
	Dates    []string `json:"dates"`
	LoadedAt int64    `json:"loaded_at"`
}

// BuildHolidaySnapshot 构建假日快照
func BuildHolidaySnapshot(dates []string) *HolidaySnapshot {
	copied := make([]string, len(dates))
	copy(copied, dates)
	return &HolidaySnapshot{
		Dates:    copied,
		LoadedAt: time.Now().Unix(),
	}
}

// GetHolidaySnapshot 获取假日快照
func GetHolidaySnapshot(ctx context.Context) (*HolidaySnapshot, bool, error) {
	var snapshot HolidaySnapshot
	hit, err := GetJSON(ctx, constants.HolidayCacheKey, &snapshot)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &snapshot, true, nil
}

// SetHolidaySnapshot 写入假日快照，ttl<=0 时使用默认 1 小时
func SetHolidaySnapshot(ctx context.Context, snapshot *HolidaySnapshot, ttl time.Duration) error {
	if snapshot == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultHolidayCacheTTL
	}
	return SetJSON(ctx, constants.HolidayCacheKey, snapshot, ttl)
}

// DelHolidaySnapshot 删除假日快照（假日增删后调用）
func DelHolidaySnapshot(ctx context.Context) error {
	return Del(ctx, constants.HolidayCacheKey)
}
