package models

import (
	"time"

	"gorm.io/gorm"
)

// VendorBankAccount 供应商收款账户
type VendorBankAccount struct {
	AccountHolderName string `gorm:"type:varchar(120)" json:"account_holder_name"` // 开户名
	AccountNumber     string `gorm:"type:varchar(64)" json:"account_number"`       // 账号
	IFSCCode          string `gorm:"type:varchar(20)" json:"ifsc_code"`            // IFSC
	BankName          string `gorm:"type:varchar(120)" json:"bank_name"`           // 开户行
}

// IsEmpty 是否未填写收款账户
func (a VendorBankAccount) IsEmpty() bool {
	return a.AccountHolderName == "" && a.AccountNumber == "" && a.IFSCCode == "" && a.BankName == ""
}

// Vendor 供应商表
type Vendor struct {
	ID                   uint              `gorm:"primarykey" json:"id"`                                // 主键
	Name                 string            `gorm:"type:varchar(160);not null" json:"name"`              // 名称
	Email                string            `gorm:"type:varchar(160);index" json:"email"`                // 邮箱
	Phone                string            `gorm:"type:varchar(32)" json:"phone,omitempty"`             // 电话
	Status               string            `gorm:"type:varchar(20);index;not null" json:"status"`       // 状态
	CommissionPercentage *float64          `gorm:"type:decimal(6,2)" json:"commission_percentage"`      // 佣金比例覆盖，空则使用平台默认
	BankAccount          VendorBankAccount `gorm:"embedded;embeddedPrefix:bank_" json:"bank_account"`   // 收款账户
	CreatedAt            time.Time         `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt            time.Time         `json:"updated_at"`                                          // 更新时间
	DeletedAt            gorm.DeletedAt    `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}
