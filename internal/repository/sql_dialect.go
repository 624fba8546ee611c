package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// isPostgres 判断连接是否为 PostgreSQL，其余按 sqlite 处理
func isPostgres(db *gorm.DB) bool {
	if db == nil || db.Dialector == nil {
		return false
	}
	name := strings.ToLower(db.Dialector.Name())
	return name == "postgres" || name == "postgresql"
}

// keywordSearch 多列模糊匹配 scope；postgres 使用 ILIKE，关键字中的通配符按字面匹配
func keywordSearch(keyword string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return db
		}
		condition, count := buildLikeCondition(isPostgres(db), columns)
		if count == 0 {
			return db
		}
		pattern := "%" + likeEscaper.Replace(keyword) + "%"
		args := make([]interface{}, count)
		for i := range args {
			args[i] = pattern
		}
		return db.Where(condition, args...)
	}
}

func buildLikeCondition(postgres bool, columns []string) (string, int) {
	operator := "LIKE"
	if postgres {
		operator = "ILIKE"
	}
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf(`%s %s ? ESCAPE '\'`, column, operator))
	}
	if len(parts) == 0 {
		return "", 0
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}
