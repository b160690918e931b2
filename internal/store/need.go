package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"it-inventory/internal/audit"
	"it-inventory/internal/models"

	"gorm.io/gorm"
)

// NeedStore — заявки на закупку. Параллельный активам CRUD без
// журнала изменений; пакетные операции сообщают число фактически
// затронутых строк.
type NeedStore struct {
	db *gorm.DB
}

func NewNeedStore(db *gorm.DB) *NeedStore {
	return &NeedStore{db: db}
}

func (s *NeedStore) List(ctx context.Context) ([]models.Need, error) {
	var needs []models.Need
	err := s.db.WithContext(ctx).Find(&needs).Error
	return needs, err
}

func (s *NeedStore) Get(ctx context.Context, id uint) (*models.Need, error) {
	var n models.Need
	err := s.db.WithContext(ctx).First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NeedStore) Create(ctx context.Context, n *models.Need) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// поля заявки, доступные для частичного обновления
var needUpdatableFields = []string{
	"department_id", "asset_type_id", "quantity", "reason_date", "status", "note",
}

// Update применяет частичное обновление с пофилевой валидацией:
// количество остаётся положительным, статус не обнуляется.
func (s *NeedStore) Update(ctx context.Context, id uint, input map[string]any) (*models.Need, error) {
	var n models.Need
	err := s.db.WithContext(ctx).First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	fieldErrors := map[string]string{}
	for _, field := range needUpdatableFields {
		v, ok := input[field]
		if !ok {
			continue
		}
		switch field {
		case "department_id", "asset_type_id":
			id := audit.CoerceID(v)
			if id == nil {
				fieldErrors[field] = fmt.Sprintf("Неверный формат для %s", field)
				continue
			}
			if field == "department_id" {
				n.DepartmentID = *id
			} else {
				n.AssetTypeID = *id
			}
		case "quantity":
			q, ok := coerceInt(v)
			if !ok || q <= 0 {
				fieldErrors["quantity"] = "Количество должно быть положительным"
				continue
			}
			n.Quantity = q
		case "reason_date":
			d, ok := audit.CoerceDate(v)
			if !ok || d == nil {
				fieldErrors["reason_date"] = "Неверный формат для reason_date"
				continue
			}
			n.ReasonDate = *d
		case "status":
			status := strings.TrimSpace(audit.CoerceString(v))
			if status == "" {
				fieldErrors["status"] = "Статус не может быть пустым"
				continue
			}
			n.Status = status
		case "note":
			note := strings.TrimSpace(audit.CoerceString(v))
			if note == "" {
				n.Note = nil
			} else {
				n.Note = &note
			}
		}
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Message: "Ошибка в данных", Fields: fieldErrors}
	}

	if err := s.db.WithContext(ctx).Save(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NeedStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Need{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BatchDelete удаляет заявки по списку ID; несуществующие ID молча
// пропускаются. Возвращает число удалённых строк.
func (s *NeedStore) BatchDelete(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Need{})
	return res.RowsAffected, res.Error
}

// BatchUpdateStatus выставляет статус заявкам по списку ID и
// возвращает число фактически обновлённых строк.
func (s *NeedStore) BatchUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Model(&models.Need{}).
		Where("id IN ?", ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func coerceInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if x != float64(int(x)) {
			return 0, false
		}
		return int(x), true
	case int:
		return x, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
