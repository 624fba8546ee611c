package repository

import "gorm.io/gorm"

// firstOrNil 按 order 取首条记录，不存在时返回 nil, nil
func firstOrNil[T any](query *gorm.DB, order string) (*T, error) {
	var row T
	result := query.Order(order).Limit(1).Find(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}
