package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperatorByDialect sqlite 的 LIKE 对 ASCII 大小写不敏感，postgres 需要 ILIKE
func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// containsCondition 构建大小写不敏感的子串匹配条件及参数
func containsCondition(db *gorm.DB, column, keyword string) (string, string) {
	return containsConditionByDialect(dbDialectName(db), column, keyword)
}

// likeEscaper 转义通配符，关键字按字面量匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsConditionByDialect(dialect, column, keyword string) (string, string) {
	condition := fmt.Sprintf(`%s %s ? ESCAPE '\'`, column, likeOperatorByDialect(dialect))
	return condition, "%" + likeEscaper.Replace(keyword) + "%"
}
