package shared

import "strconv"

// NormalizePagination 归一化分页参数，perPage 超过上限时截断。
func NormalizePagination(pageNo, perPage, defaultPerPage, maxPerPage int) (int, int) {
	if pageNo < 1 {
		pageNo = 1
	}
	if defaultPerPage <= 0 {
		defaultPerPage = 10
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	return pageNo, perPage
}

// ParseIntOr 解析已通过数字校验的查询参数，空值或溢出时返回 fallback。
func ParseIntOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// ParseID 解析已通过 id 规则校验的 ID；未校验的非法值返回 0。
func ParseID(raw string) uint {
	value, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0
	}
	return uint(value)
}
