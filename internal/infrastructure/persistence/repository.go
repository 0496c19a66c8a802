package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// findError maps gorm's not-found to shared.ErrNotFound and wraps everything else.
func findError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// containsPattern builds an ILIKE pattern matching term anywhere, with LIKE wildcards in term escaped.
func containsPattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(term)) + "%"
}

// paginate applies offset and limit for one page.
func paginate(page shared.PageRequest) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page = page.WithDefaults()
		return db.Offset(page.Offset()).Limit(page.Limit())
	}
}

// uniqueIDs drops nil and duplicate ids.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type idName struct {
	ID   uuid.UUID
	Name string
}

// findNames loads id → name for ids from table using nameExpr.
func findNames(db *gorm.DB, table, nameExpr string, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	ids = uniqueIDs(ids)
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []idName
	if err := db.Table(table).Select("id, "+nameExpr+" AS name").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("find %s names: %w", table, err)
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// exists reports whether table has a row with id.
func exists(db *gorm.DB, table string, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s exists: %w", table, err)
	}
	return count > 0, nil
}
