package shared

import (
	"strconv"
	"strings"

	"github.com/vendorhub/payout/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ContextOperatorID 读取中间件写入的操作人 ID，未设置时为 0
// 类型不符时直接返回 500 响应，调用方只需判断 ok
func ContextOperatorID(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists || value == nil {
		return 0, true
	}
	var id int64
	switch v := value.(type) {
	case uint:
		return v, true
	case uint64:
		return uint(v), true
	case int:
		id = int64(v)
	case int64:
		id = v
	default:
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return 0, false
	}
	if id < 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// ParsePathUint 解析路径中的正整数 ID
func ParsePathUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ParseQueryUint 解析可选的正整数查询参数，缺省时返回 0
func ParseQueryUint(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
