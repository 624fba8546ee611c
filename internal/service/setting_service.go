package service

import (
	"fmt"
	"strings"

	"github.com/vendorhub/payout/internal/models"
	"github.com/vendorhub/payout/internal/repository"
)

// SettingService 键值配置服务，结算策略等运行期可调参数存于 settings 表
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey 未配置时返回 nil
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, fmt.Errorf("load setting %s: %w", key, err)
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 覆盖写入
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("setting key is empty")
	}
	setting, err := s.repo.Upsert(key, models.JSON(value))
	if err != nil {
		return nil, fmt.Errorf("save setting %s: %w", key, err)
	}
	return setting.ValueJSON, nil
}
