package models

import "time"

// BankHoliday 银行假日表
type BankHoliday struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Date      string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Name      string    `gorm:"type:varchar(120)" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (BankHoliday) TableName() string {
	return "bank_holidays"
}
