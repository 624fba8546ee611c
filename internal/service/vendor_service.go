package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/vendorhub/payout/internal/constants"
	"github.com/vendorhub/payout/internal/logger"
	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"
)

// VendorService 供应商服务（结算所需的基础资料）
type VendorService struct {
	repo repository.VendorRepository
}

// CreateVendorInput 创建供应商输入
type CreateVendorInput struct {
	Name                 string
	Email                string
	Phone                string
	Status               string
	CommissionPercentage *float64
	BankAccount          models.VendorBankAccount
}

// NewVendorService 创建供应商服务
func NewVendorService(repo repository.VendorRepository) *VendorService {
	return &VendorService{repo: repo}
}

// Create 创建供应商
func (s *VendorService) Create(input CreateVendorInput) (*models.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrVendorInvalid)
	}
	if err := validateCommissionPercentage(input.CommissionPercentage); err != nil {
		return nil, err
	}
	status := strings.TrimSpace(input.Status)
	switch status {
	case "":
		status = constants.VendorStatusApproved
	case constants.VendorStatusPending, constants.VendorStatusApproved, constants.VendorStatusBlocked:
	default:
		return nil, fmt.Errorf("%w: status %q", ErrVendorInvalid, status)
	}
	vendor := &models.Vendor{
		Name:                 name,
		Email:                strings.TrimSpace(input.Email),
		Phone:                strings.TrimSpace(input.Phone),
		Status:               status,
		CommissionPercentage: input.CommissionPercentage,
		BankAccount:          normalizeBankAccount(input.BankAccount),
	}
	if err := s.repo.Create(vendor); err != nil {
		logger.Errorw("vendor_create_failed", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrVendorCreateFailed, err)
	}
	return vendor, nil
}

// Get 获取供应商
func (s *VendorService) Get(id uint) (*models.Vendor, error) {
	vendor, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return vendor, nil
}

// List 分页查询供应商
func (s *VendorService) List(filter repository.VendorListFilter) ([]models.Vendor, int64, error) {
	return s.repo.List(filter)
}

// UpdateCommission 修改佣金比例覆盖，nil 表示恢复平台默认；已创建的结算单不重算
func (s *VendorService) UpdateCommission(id uint, percentage *float64) (*models.Vendor, error) {
	if err := validateCommissionPercentage(percentage); err != nil {
		return nil, err
	}
	vendor, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	vendor.CommissionPercentage = percentage
	if err := s.repo.Update(vendor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVendorUpdateFailed, err)
	}
	logger.Infow("vendor_commission_updated", "vendor_id", id, "commission_percentage", percentage)
	return vendor, nil
}

// UpdateBankAccount 修改收款账户；已创建的结算单保留创建时快照
func (s *VendorService) UpdateBankAccount(id uint, account models.VendorBankAccount) (*models.Vendor, error) {
	account = normalizeBankAccount(account)
	if account.AccountNumber == "" || account.IFSCCode == "" {
		return nil, fmt.Errorf("%w: account_number and ifsc_code required", ErrVendorInvalid)
	}
	vendor, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	vendor.BankAccount = account
	if err := s.repo.Update(vendor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVendorUpdateFailed, err)
	}
	logger.Infow("vendor_bank_account_updated", "vendor_id", id)
	return vendor, nil
}

func validateCommissionPercentage(percentage *float64) error {
	if percentage == nil {
		return nil
	}
	value := *percentage
	if math.IsNaN(value) || value < payoutRateMin || value > payoutRateMax {
		return fmt.Errorf("%w: commission_percentage must be within 0-100", ErrVendorInvalid)
	}
	return nil
}

func normalizeBankAccount(account models.VendorBankAccount) models.VendorBankAccount {
	return models.VendorBankAccount{
		AccountHolderName: strings.TrimSpace(account.AccountHolderName),
		AccountNumber:     strings.TrimSpace(account.AccountNumber),
		IFSCCode:          strings.ToUpper(strings.TrimSpace(account.IFSCCode)),
		BankName:          strings.TrimSpace(account.BankName),
	}
}
