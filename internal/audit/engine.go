package audit

import (
	"fmt"
	"strings"

	"it-inventory/internal/models"

	"gorm.io/gorm"
)

// Действия в журнале изменений.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

const (
	createdNote = "Актив создан"
	deletedNote = "Актив удален"
	emptyValue  = "-"
)

// FieldChange — одно фактически изменившееся поле.
type FieldChange struct {
	Field string
	Old   any
	New   any
}

// Diff сравнивает снимок актива с присланными значениями.
// Учитываются только ключи, присутствующие во входной карте и
// входящие в таблицу полей; результат идёт в порядке таблицы полей,
// а не в порядке ключей клиента.
func Diff(old map[string]any, input map[string]any) []FieldChange {
	var out []FieldChange
	for i := range assetFields {
		f := &assetFields[i]
		newV, ok := input[f.Name]
		if !ok {
			continue
		}
		if f.Equal(old[f.Name], newV) {
			continue
		}
		out = append(out, FieldChange{Field: f.Name, Old: old[f.Name], New: newV})
	}
	return out
}

// Apply записывает новые значения изменившихся полей в актив.
func Apply(a *models.Asset, changes []FieldChange) {
	for _, ch := range changes {
		if f, ok := fieldIndex[ch.Field]; ok {
			f.Set(a, ch.New)
		}
	}
}

// Lookup разрешает ID справочников в имена. Передаётся явно, чтобы
// движок не делал скрытых запросов через ленивые связи ORM.
type Lookup interface {
	TypeName(id uint) (string, bool)
	DepartmentName(id uint) (string, bool)
	StatusName(id uint) (string, bool)
	EmployeeName(id uint) (string, bool)
}

// Recorder пишет записи журнала изменений в рамках переданной
// транзакции: записи фиксируются или откатываются вместе с мутацией
// актива, которую они описывают.
type Recorder struct {
	db     *gorm.DB
	lookup Lookup
}

func NewRecorder(db *gorm.DB, lookup Lookup) *Recorder {
	return &Recorder{db: db, lookup: lookup}
}

// DisplayValue переводит сырое значение поля в строку для журнала.
// Ошибок не бывает: отсутствующая строка справочника даёт метку с ID,
// нечисловое значение ID-поля выводится как есть, пустое — прочерком.
func (r *Recorder) DisplayValue(field string, v any) string {
	if v == nil {
		return emptyValue
	}
	if s, ok := v.(string); ok && s == "" {
		return emptyValue
	}
	switch field {
	case "type_id", "category_id":
		return r.refDisplay(v, "Тип", r.lookup.TypeName)
	case "department_id":
		return r.refDisplay(v, "Отдел", r.lookup.DepartmentName)
	case "status_id":
		return r.refDisplay(v, "Статус", r.lookup.StatusName)
	case "responsible_person":
		return r.refDisplay(v, "Сотрудник", r.lookup.EmployeeName)
	}
	return CoerceString(v)
}

func (r *Recorder) refDisplay(v any, label string, resolve func(uint) (string, bool)) string {
	id := CoerceID(v)
	if id == nil {
		return CoerceString(v)
	}
	if name, ok := resolve(*id); ok {
		return name
	}
	return fmt.Sprintf("%s #%d", label, *id)
}

// AssetName собирает денормализованное имя актива на момент записи:
// "<Тип> <Бренд> <Модель>" по объединённому представлению (новые
// значения из запроса, где они есть, иначе старые).
func (r *Recorder) AssetName(typeID *uint, brand, model string) string {
	typeName := models.NoTypeName
	if typeID != nil {
		if name, ok := r.lookup.TypeName(*typeID); ok {
			typeName = name
		}
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", typeName, brand, model))
}

// AssetCreated пишет единственную запись о создании актива.
func (r *Recorder) AssetCreated(a *models.Asset) error {
	id := a.TypeID
	rec := models.Change{
		AssetID:         &a.ID,
		InventoryNumber: a.InventoryNumber,
		AssetName:       r.AssetName(&id, a.Brand, a.Model),
		Action:          ActionCreated,
		Field:           "created",
		OldValue:        "",
		NewValue:        createdNote,
	}
	return r.db.Create(&rec).Error
}

// AssetDeleted пишет единственную запись об удалении актива.
func (r *Recorder) AssetDeleted(a *models.Asset) error {
	id := a.TypeID
	rec := models.Change{
		AssetID:         &a.ID,
		InventoryNumber: a.InventoryNumber,
		AssetName:       r.AssetName(&id, a.Brand, a.Model),
		Action:          ActionDeleted,
		Field:           "deleted",
		OldValue:        deletedNote,
		NewValue:        "",
	}
	return r.db.Create(&rec).Error
}

// FieldChanged пишет одну запись об изменении конкретного поля.
// inv и name — инвентарный номер и имя по объединённому представлению.
func (r *Recorder) FieldChanged(assetID uint, inv, name, field, oldDisplay, newDisplay string) error {
	rec := models.Change{
		AssetID:         &assetID,
		InventoryNumber: inv,
		AssetName:       name,
		Action:          ActionUpdated,
		Field:           field,
		OldValue:        oldDisplay,
		NewValue:        newDisplay,
	}
	return r.db.Create(&rec).Error
}
