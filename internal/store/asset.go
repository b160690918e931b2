package store

import (
	"context"
	"errors"

	"it-inventory/internal/audit"
	"it-inventory/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssetStore — операции над активами. Каждая мутация выполняется в
// одной транзакции вместе с записями журнала: журнал и актив не могут
// разойтись.
type AssetStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAssetStore(db *gorm.DB, log *zap.Logger) *AssetStore {
	return &AssetStore{db: db, log: log}
}

// допустимые колонки сортировки списка
var assetSortColumns = map[string]string{
	"id":                 "id",
	"serial_number":      "serial_number",
	"inventory_number":   "inventory_number",
	"brand":              "brand",
	"model":              "model",
	"type_id":            "type_id",
	"department_id":      "department_id",
	"room":               "room",
	"purchase_date":      "purchase_date",
	"responsible_person": "responsible_person",
	"actual_user":        "actual_user",
	"status_id":          "status_id",
	"diagonal":           "diagonal",
	"CPU":                "cpu",
	"RAM":                "ram",
	"Drive":              "drive",
	"OS":                 "os",
	"IP_address":         "ip_address",
	"number":             "number",
}

// List возвращает активы с поиском по инвентарному и серийному номеру
// и сортировкой по разрешённой колонке.
func (s *AssetStore) List(ctx context.Context, search, sortBy, order string) ([]models.Asset, error) {
	q := s.db.WithContext(ctx).Preload("Type")
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("inventory_number LIKE ? OR serial_number LIKE ?", pattern, pattern)
	}
	col, ok := assetSortColumns[sortBy]
	if !ok {
		col = "id"
	}
	if order == "desc" {
		col += " desc"
	}
	var assets []models.Asset
	err := q.Order(col).Find(&assets).Error
	return assets, err
}

func (s *AssetStore) Get(ctx context.Context, id uint) (*models.Asset, error) {
	var a models.Asset
	err := s.db.WithContext(ctx).Preload("Type").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create сохраняет новый актив и запись "created" в одной транзакции.
func (s *AssetStore) Create(ctx context.Context, a *models.Asset) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		rec := audit.NewRecorder(tx, NewLookup(tx))
		return rec.AssetCreated(a)
	})
}

// Update применяет частичное обновление: учитываются только ключи,
// присутствующие во входной карте; в журнал пишется по записи на
// каждое фактически изменившееся поле. Запрос без изменений
// возвращает актив как есть.
func (s *AssetStore) Update(ctx context.Context, id uint, input map[string]any) (*models.Asset, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		old := audit.Snapshot(&a)
		changes := audit.Diff(old, input)
		if len(changes) == 0 {
			return nil
		}
		audit.Apply(&a, changes)

		rec := audit.NewRecorder(tx, NewLookup(tx))
		name := rec.AssetName(
			mergedID(input, old, "type_id"),
			mergedString(input, old, "brand"),
			mergedString(input, old, "model"),
		)
		inv := mergedString(input, old, "inventory_number")
		for _, ch := range changes {
			oldDisplay := rec.DisplayValue(ch.Field, ch.Old)
			newDisplay := rec.DisplayValue(ch.Field, ch.New)
			if err := rec.FieldChanged(a.ID, inv, name, ch.Field, oldDisplay, newDisplay); err != nil {
				return err
			}
		}

		return tx.Save(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete пишет запись "deleted" и удаляет актив; ссылки старых записей
// журнала на актив обнуляются ограничением ON DELETE SET NULL.
func (s *AssetStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		rec := audit.NewRecorder(tx, NewLookup(tx))
		if err := rec.AssetDeleted(&a); err != nil {
			return err
		}
		return tx.Delete(&a).Error
	})
}

func mergedID(input, old map[string]any, key string) *uint {
	if v, ok := input[key]; ok {
		return audit.CoerceID(v)
	}
	return audit.CoerceID(old[key])
}

func mergedString(input, old map[string]any, key string) string {
	if v, ok := input[key]; ok {
		return audit.CoerceString(v)
	}
	return audit.CoerceString(old[key])
}
