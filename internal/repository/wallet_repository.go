package repository

import (
	"strings"

	"github.com/vendorhub/payout/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository 供应商钱包数据访问接口
type WalletRepository interface {
	WithTx(tx *gorm.DB) WalletRepository
	GetByVendorID(vendorID uint) (*models.VendorWallet, error)
	GetByVendorIDForUpdate(vendorID uint) (*models.VendorWallet, error)
	Create(wallet *models.VendorWallet) error
	Update(wallet *models.VendorWallet) error
	CreateTransaction(txn *models.WalletTransaction) error
	GetTransactionByReference(reference string) (*models.WalletTransaction, error)
	ListTransactions(filter WalletTransactionListFilter) ([]models.WalletTransaction, int64, error)
	ListAllTransactions(vendorID uint) ([]models.WalletTransaction, error)
}

// GormWalletRepository GORM 钱包仓储实现
type GormWalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository 创建钱包仓储
func NewWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWalletRepository) WithTx(tx *gorm.DB) WalletRepository {
	if tx == nil {
		return r
	}
	return &GormWalletRepository{db: tx}
}

// GetByVendorID 按供应商获取钱包，不存在时返回 nil
func (r *GormWalletRepository) GetByVendorID(vendorID uint) (*models.VendorWallet, error) {
	if vendorID == 0 {
		return nil, nil
	}
	return firstOrNil[models.VendorWallet](r.db.Where("vendor_id = ?", vendorID), "id asc")
}

// GetByVendorIDForUpdate 同上，事务内加行锁（sqlite 下忽略）
func (r *GormWalletRepository) GetByVendorIDForUpdate(vendorID uint) (*models.VendorWallet, error) {
	if vendorID == 0 {
		return nil, nil
	}
	locked := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("vendor_id = ?", vendorID)
	return firstOrNil[models.VendorWallet](locked, "id asc")
}

// Create 创建钱包
func (r *GormWalletRepository) Create(wallet *models.VendorWallet) error {
	return r.db.Create(wallet).Error
}

// Update 更新钱包
func (r *GormWalletRepository) Update(wallet *models.VendorWallet) error {
	return r.db.Save(wallet).Error
}

// CreateTransaction 追加钱包流水
func (r *GormWalletRepository) CreateTransaction(txn *models.WalletTransaction) error {
	return r.db.Create(txn).Error
}

// GetTransactionByReference 按幂等引用获取流水
func (r *GormWalletRepository) GetTransactionByReference(reference string) (*models.WalletTransaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	return firstOrNil[models.WalletTransaction](r.db.Where("reference = ?", reference), "id asc")
}

// ListTransactions 分页查询钱包流水，新的在前
func (r *GormWalletRepository) ListTransactions(filter WalletTransactionListFilter) ([]models.WalletTransaction, int64, error) {
	query := r.db.Model(&models.WalletTransaction{}).Scopes(walletTxnFilter(filter))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	txns := make([]models.WalletTransaction, 0)
	err := query.Scopes(paginate(filter.Page, filter.PageSize)).Order("id desc").Find(&txns).Error
	return txns, total, err
}

func walletTxnFilter(filter WalletTransactionListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		conds := map[string]interface{}{}
		if filter.VendorID != 0 {
			conds["vendor_id"] = filter.VendorID
		}
		if filter.Type != "" {
			conds["type"] = filter.Type
		}
		if filter.Category != "" {
			conds["category"] = filter.Category
		}
		if len(conds) > 0 {
			db = db.Where(conds)
		}
		if filter.CreatedFrom != nil {
			db = db.Where("created_at >= ?", *filter.CreatedFrom)
		}
		if filter.CreatedTo != nil {
			db = db.Where("created_at <= ?", *filter.CreatedTo)
		}
		return db
	}
}

// ListAllTransactions 按写入顺序返回供应商全部流水（对账重放）
func (r *GormWalletRepository) ListAllTransactions(vendorID uint) ([]models.WalletTransaction, error) {
	if vendorID == 0 {
		return []models.WalletTransaction{}, nil
	}
	var txns []models.WalletTransaction
	if err := r.db.Where("vendor_id = ?", vendorID).Order("id asc").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
