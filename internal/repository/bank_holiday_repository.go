package repository

import (
	"errors"
	"strings"

	"github.com/vendorhub/payout/internal/models"

	"gorm.io/gorm"
)

// BankHolidayRepository 银行假日数据访问接口
type BankHolidayRepository interface {
	List(filter BankHolidayListFilter) ([]models.BankHoliday, error)
	GetByDate(date string) (*models.BankHoliday, error)
	Create(holiday *models.BankHoliday) error
	DeleteByDate(date string) (int64, error)
}

// GormBankHolidayRepository GORM 实现
type GormBankHolidayRepository struct {
	db *gorm.DB
}

// NewBankHolidayRepository 创建银行假日仓库
func NewBankHolidayRepository(db *gorm.DB) *GormBankHolidayRepository {
	return &GormBankHolidayRepository{db: db}
}

// List 按日期升序列出假日（YYYY-MM-DD 文本可直接比较）
func (r *GormBankHolidayRepository) List(filter BankHolidayListFilter) ([]models.BankHoliday, error) {
	query := r.db.Model(&models.BankHoliday{})
	if from := strings.TrimSpace(filter.FromDate); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := strings.TrimSpace(filter.ToDate); to != "" {
		query = query.Where("date <= ?", to)
	}
	var holidays []models.BankHoliday
	if err := query.Order("date asc").Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

// GetByDate 按日期获取假日
func (r *GormBankHolidayRepository) GetByDate(date string) (*models.BankHoliday, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, nil
	}
	var holiday models.BankHoliday
	if err := r.db.Where("date = ?", date).First(&holiday).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &holiday, nil
}

// Create 创建假日
func (r *GormBankHolidayRepository) Create(holiday *models.BankHoliday) error {
	return r.db.Create(holiday).Error
}

// DeleteByDate 删除指定日期的假日
func (r *GormBankHolidayRepository) DeleteByDate(date string) (int64, error) {
	result := r.db.Where("date = ?", strings.TrimSpace(date)).Delete(&models.BankHoliday{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
