package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"it-inventory/internal/audit"
	"it-inventory/internal/models"

	"gorm.io/gorm"
)

// ChangeStore — чтение журнала изменений. Запись идёт только через
// audit.Recorder внутри транзакций AssetStore; существующие записи
// никогда не меняются и не удаляются.
type ChangeStore struct {
	db *gorm.DB
}

func NewChangeStore(db *gorm.DB) *ChangeStore {
	return &ChangeStore{db: db}
}

// ChangeFilter — фильтры списка изменений. Некорректные даты
// игнорируются, как в остальных местах API.
type ChangeFilter struct {
	AssetID   *uint
	Action    string
	Field     string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD, включительно до конца суток
}

func (s *ChangeStore) List(ctx context.Context, f ChangeFilter) ([]models.Change, error) {
	q := s.db.WithContext(ctx).Model(&models.Change{})
	if f.AssetID != nil {
		q = q.Where("asset_id = ?", *f.AssetID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Field != "" {
		q = q.Where("field = ?", f.Field)
	}
	if f.StartDate != "" {
		if t, err := time.Parse("2006-01-02", f.StartDate); err == nil {
			q = q.Where("changed_at >= ?", t)
		}
	}
	if f.EndDate != "" {
		if t, err := time.Parse("2006-01-02", f.EndDate); err == nil {
			q = q.Where("changed_at <= ?", t.Add(23*time.Hour+59*time.Minute+59*time.Second))
		}
	}
	var changes []models.Change
	err := q.Order("changed_at desc").Find(&changes).Error
	return changes, err
}

// Move — строка истории перемещений: смена комнаты или отдела.
type Move struct {
	ID              uint   `json:"id"`
	AssetID         *uint  `json:"asset_id"`
	Date            string `json:"date"`
	InventoryNumber string `json:"inventory_number"`
	AssetName       string `json:"asset_name"`
	FromRoom        string `json:"from_room"`
	ToRoom          string `json:"to_room"`
	MoveType        string `json:"move_type"`
}

// Moves — проекция журнала по полям room и department_id.
// Числовые значения отдела разрешаются в имена, нечисловые (журнал
// хранит уже отображаемые значения) отдаются как есть.
func (s *ChangeStore) Moves(ctx context.Context) ([]Move, error) {
	var changes []models.Change
	err := s.db.WithContext(ctx).
		Where("field = ? OR field = ?", "room", "department_id").
		Order("changed_at desc").
		Find(&changes).Error
	if err != nil {
		return nil, err
	}

	lookup := NewLookup(s.db.WithContext(ctx))
	moves := make([]Move, 0, len(changes))
	for _, c := range changes {
		m := Move{
			ID:              c.ID,
			AssetID:         c.AssetID,
			Date:            c.ChangedAt.Format(time.RFC3339),
			InventoryNumber: c.InventoryNumber,
			AssetName:       c.AssetName,
		}
		if c.Field == "room" {
			m.MoveType = "room"
			m.FromRoom = orDash(c.OldValue)
			m.ToRoom = orDash(c.NewValue)
		} else {
			m.MoveType = "department"
			m.FromRoom = s.departmentLabel(lookup, c.OldValue)
			m.ToRoom = s.departmentLabel(lookup, c.NewValue)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

func (s *ChangeStore) departmentLabel(lookup audit.Lookup, raw string) string {
	if raw == "" {
		return "-"
	}
	if n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32); err == nil {
		if name, ok := lookup.DepartmentName(uint(n)); ok {
			return name
		}
		return fmt.Sprintf("Отдел #%d", n)
	}
	return raw
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
