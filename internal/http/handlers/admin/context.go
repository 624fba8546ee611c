package admin

import (
	handlershared "github.com/vendorhub/payout/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

const operatorContextKey = "admin_id"

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.ContextOperatorID(c, operatorContextKey)
}

func parsePathUint(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParsePathUint(c, name)
}
