package repository

import (
	"errors"
	"strings"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayoutRepository 结算单与结算占用数据访问接口
type PayoutRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PayoutRepository

	Create(payout *models.VendorPayout) error
	GetByID(id uint) (*models.VendorPayout, error)
	GetByIDForUpdate(id uint) (*models.VendorPayout, error)
	UpdateWithStatus(id uint, fromStatuses []string, updates map[string]interface{}) (int64, error)
	List(filter PayoutListFilter) ([]models.VendorPayout, int64, error)
	ListCompleted(filter CompletedPayoutFilter) ([]models.VendorPayout, error)

	CreateClaims(claims []models.PayoutClaim) error
	ListClaimedSourceIDs(vendorID uint, sourceType string, sourceIDs []uint) ([]uint, error)
	DeleteClaimsByPayoutID(payoutID uint) (int64, error)
}

// GormPayoutRepository GORM 实现
type GormPayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository 创建结算单仓库
func NewPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// Transaction 开启事务
func (r *GormPayoutRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// WithTx 绑定事务
func (r *GormPayoutRepository) WithTx(tx *gorm.DB) PayoutRepository {
	if tx == nil {
		return r
	}
	return &GormPayoutRepository{db: tx}
}

// Create 创建结算单
func (r *GormPayoutRepository) Create(payout *models.VendorPayout) error {
	return r.db.Create(payout).Error
}

// GetByID 根据ID获取结算单
func (r *GormPayoutRepository) GetByID(id uint) (*models.VendorPayout, error) {
	if id == 0 {
		return nil, nil
	}
	var payout models.VendorPayout
	if err := r.db.First(&payout, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payout, nil
}

// GetByIDForUpdate 加行锁获取结算单（sqlite 忽略锁子句，依赖写事务串行）
func (r *GormPayoutRepository) GetByIDForUpdate(id uint) (*models.VendorPayout, error) {
	if id == 0 {
		return nil, nil
	}
	var payout models.VendorPayout
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payout, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payout, nil
}

// UpdateWithStatus 仅当当前状态属于 fromStatuses 时更新，返回受影响行数
func (r *GormPayoutRepository) UpdateWithStatus(id uint, fromStatuses []string, updates map[string]interface{}) (int64, error) {
	if id == 0 || len(fromStatuses) == 0 || len(updates) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.VendorPayout{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// List 分页查询结算单
func (r *GormPayoutRepository) List(filter PayoutListFilter) ([]models.VendorPayout, int64, error) {
	query := r.db.Model(&models.VendorPayout{})
	if filter.VendorID != 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if payoutNo := strings.TrimSpace(filter.PayoutNo); payoutNo != "" {
		query = query.Where("payout_no = ?", payoutNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	var payouts []models.VendorPayout
	if err := query.Order("id desc").Find(&payouts).Error; err != nil {
		return nil, 0, err
	}
	return payouts, total, nil
}

// ListCompleted 查询已完成结算单（报表统计），完成时间先按放宽一天的边界在 SQL 中过滤，再在内存中精确过滤
func (r *GormPayoutRepository) ListCompleted(filter CompletedPayoutFilter) ([]models.VendorPayout, error) {
	query := r.db.Model(&models.VendorPayout{}).Where("status = ?", constants.PayoutStatusCompleted)
	if filter.VendorID != 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.CompletedFrom != nil || filter.CompletedTo != nil {
		query = query.Where("completed_at IS NOT NULL")
	}
	if filter.CompletedFrom != nil {
		query = query.Where("completed_at >= ?", filter.CompletedFrom.AddDate(0, 0, -1).UTC())
	}
	if filter.CompletedTo != nil {
		query = query.Where("completed_at < ?", filter.CompletedTo.AddDate(0, 0, 1).UTC())
	}

	var payouts []models.VendorPayout
	if err := query.Order("completed_at asc, id asc").Find(&payouts).Error; err != nil {
		return nil, err
	}
	if filter.CompletedFrom == nil && filter.CompletedTo == nil {
		return payouts, nil
	}
	result := make([]models.VendorPayout, 0, len(payouts))
	for _, payout := range payouts {
		if payout.CompletedAt == nil {
			continue
		}
		if filter.CompletedFrom != nil && payout.CompletedAt.Before(*filter.CompletedFrom) {
			continue
		}
		if filter.CompletedTo != nil && !payout.CompletedAt.Before(*filter.CompletedTo) {
			continue
		}
		result = append(result, payout)
	}
	return result, nil
}

// CreateClaims 批量写入结算占用，唯一索引冲突时返回数据库错误
func (r *GormPayoutRepository) CreateClaims(claims []models.PayoutClaim) error {
	if len(claims) == 0 {
		return nil
	}
	return r.db.CreateInBatches(claims, 200).Error
}

// ListClaimedSourceIDs 返回已被占用的来源ID
func (r *GormPayoutRepository) ListClaimedSourceIDs(vendorID uint, sourceType string, sourceIDs []uint) ([]uint, error) {
	if vendorID == 0 || len(sourceIDs) == 0 {
		return []uint{}, nil
	}
	var ids []uint
	if err := r.db.Model(&models.PayoutClaim{}).
		Where("vendor_id = ? AND source_type = ? AND source_id IN ?", vendorID, sourceType, sourceIDs).
		Order("source_id asc").
		Pluck("source_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteClaimsByPayoutID 释放结算单的全部占用
func (r *GormPayoutRepository) DeleteClaimsByPayoutID(payoutID uint) (int64, error) {
	if payoutID == 0 {
		return 0, nil
	}
	result := r.db.Where("payout_id = ?", payoutID).Delete(&models.PayoutClaim{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
