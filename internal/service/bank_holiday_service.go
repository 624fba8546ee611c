package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vendorhub/payout/internal/cache"
	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"
)

// BankHolidayService 银行假日维护，同时作为日历的假日来源（Redis 缓存 + 数据库）
type BankHolidayService struct {
	repo     repository.BankHolidayRepository
	cacheTTL time.Duration
}

// NewBankHolidayService 创建银行假日服务
func NewBankHolidayService(repo repository.BankHolidayRepository, cacheTTL time.Duration) *BankHolidayService {
	return &BankHolidayService{repo: repo, cacheTTL: cacheTTL}
}

// HolidayDates 返回全部假日日期集合，优先读缓存
func (s *BankHolidayService) HolidayDates(ctx context.Context) (map[string]struct{}, error) {
	snapshot, hit, err := cache.GetHolidaySnapshot(ctx)
	if err != nil {
		logger.Warnw("holiday_cache_read_failed", "error", err)
	}
	if hit && snapshot != nil {
		return toDateSet(snapshot.Dates), nil
	}

	holidays, err := s.repo.List(repository.BankHolidayListFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHolidayFetchFailed, err)
	}
	dates := make([]string, 0, len(holidays))
	for _, holiday := range holidays {
		dates = append(dates, holiday.Date)
	}
	if err := cache.SetHolidaySnapshot(ctx, cache.BuildHolidaySnapshot(dates), s.cacheTTL); err != nil {
		logger.Warnw("holiday_cache_write_failed", "error", err)
	}
	return toDateSet(dates), nil
}

// List 查询假日
func (s *BankHolidayService) List(filter repository.BankHolidayListFilter) ([]models.BankHoliday, error) {
	holidays, err := s.repo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHolidayFetchFailed, err)
	}
	return holidays, nil
}

// Create 新增假日并失效缓存
func (s *BankHolidayService) Create(ctx context.Context, date, name string) (*models.BankHoliday, error) {
	normalized, err := normalizeHolidayDate(date)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByDate(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHolidayFetchFailed, err)
	}
	if existing != nil {
		return nil, ErrHolidayExists
	}
	holiday := &models.BankHoliday{
		Date: normalized,
		Name: strings.TrimSpace(name),
	}
	if err := s.repo.Create(holiday); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHolidayUpdateFailed, err)
	}
	s.invalidate(ctx)
	logger.Infow("bank_holiday_created", "date", normalized, "name", holiday.Name)
	return holiday, nil
}

// Delete 删除假日并失效缓存
func (s *BankHolidayService) Delete(ctx context.Context, date string) error {
	normalized, err := normalizeHolidayDate(date)
	if err != nil {
		return err
	}
	affected, err := s.repo.DeleteByDate(normalized)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHolidayUpdateFailed, err)
	}
	if affected == 0 {
		return ErrHolidayNotFound
	}
	s.invalidate(ctx)
	logger.Infow("bank_holiday_deleted", "date", normalized)
	return nil
}

func (s *BankHolidayService) invalidate(ctx context.Context) {
	if err := cache.DelHolidaySnapshot(ctx); err != nil {
		logger.Warnw("holiday_cache_invalidate_failed", "error", err)
	}
}

func normalizeHolidayDate(raw string) (string, error) {
	parsed, err := time.Parse(constants.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrHolidayDateInvalid, raw)
	}
	return parsed.Format(constants.DateLayout), nil
}

func toDateSet(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		set[date] = struct{}{}
	}
	return set
}
