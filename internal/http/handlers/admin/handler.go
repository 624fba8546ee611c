package admin

import "github.com/vendorhub/payout/internal/provider"

// Handler 管理端接口，依赖统一从容器获取
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
