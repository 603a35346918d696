package repository

import (
	"fmt"
	"strings"
)

// buildOrderBy переводит сортировку из query-параметра ("-createdAt",
// "priority") в ORDER BY по whitelist колонок. Неизвестные ключи
// откатываются на fallback.
func buildOrderBy(sort string, allowed map[string]string, fallback string) string {
	direction := "ASC"
	key := strings.TrimSpace(sort)

	if strings.HasPrefix(key, "-") {
		direction = "DESC"
		key = key[1:]
	}

	column, ok := allowed[key]
	if !ok {
		return fallback
	}

	return fmt.Sprintf("%s %s", column, direction)
}

// normalizePage приводит пагинацию к безопасным границам
func normalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit
	return page, limit, offset
}
