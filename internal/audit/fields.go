package audit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"it-inventory/internal/models"
)

// Kind определяет, как поле сравнивается и отображается в журнале.
type Kind int

const (
	KindText Kind = iota
	KindRef       // ссылка на справочник, хранится как ID
	KindDate      // календарная дата без времени
)

// Field — одно отслеживаемое поле актива: имя в API и журнале,
// чтение снимка, типизированная запись значения из запроса.
// Таблица полей заменяет рефлексивный доступ к атрибутам: поля вне
// таблицы не обновляются и не попадают в журнал.
type Field struct {
	Name string
	Kind Kind
	Get  func(a *models.Asset) any
	Set  func(a *models.Asset, v any)
}

var assetFields = []Field{
	{
		Name: "serial_number",
		Get:  func(a *models.Asset) any { return a.SerialNumber },
		Set:  func(a *models.Asset, v any) { a.SerialNumber = CoerceString(v) },
	},
	{
		Name: "inventory_number",
		Get:  func(a *models.Asset) any { return a.InventoryNumber },
		Set:  func(a *models.Asset, v any) { a.InventoryNumber = CoerceString(v) },
	},
	{
		Name: "brand",
		Get:  func(a *models.Asset) any { return a.Brand },
		Set:  func(a *models.Asset, v any) { a.Brand = CoerceString(v) },
	},
	{
		Name: "model",
		Get:  func(a *models.Asset) any { return a.Model },
		Set:  func(a *models.Asset, v any) { a.Model = CoerceString(v) },
	},
	{
		Name: "type_id",
		Kind: KindRef,
		Get:  func(a *models.Asset) any { return a.TypeID },
		Set: func(a *models.Asset, v any) {
			// тип обязателен: нечисловое значение обнуляет ссылку,
			// ошибку целостности поднимет база
			if id := CoerceID(v); id != nil {
				a.TypeID = *id
			} else {
				a.TypeID = 0
			}
		},
	},
	{
		Name: "department_id",
		Kind: KindRef,
		Get:  func(a *models.Asset) any { return derefID(a.DepartmentID) },
		Set:  func(a *models.Asset, v any) { a.DepartmentID = CoerceID(v) },
	},
	{
		Name: "room",
		Get:  func(a *models.Asset) any { return a.Room },
		Set:  func(a *models.Asset, v any) { a.Room = CoerceString(v) },
	},
	{
		Name: "purchase_date",
		Kind: KindDate,
		Get: func(a *models.Asset) any {
			if a.PurchaseDate == nil {
				return nil
			}
			return *a.PurchaseDate
		},
		Set: func(a *models.Asset, v any) {
			d, ok := CoerceDate(v)
			if !ok {
				d = nil
			}
			a.PurchaseDate = d
		},
	},
	{
		Name: "responsible_person",
		Kind: KindRef,
		Get:  func(a *models.Asset) any { return derefID(a.ResponsiblePerson) },
		Set:  func(a *models.Asset, v any) { a.ResponsiblePerson = CoerceID(v) },
	},
	{
		Name: "actual_user",
		Get:  func(a *models.Asset) any { return a.ActualUser },
		Set:  func(a *models.Asset, v any) { a.ActualUser = CoerceString(v) },
	},
	{
		Name: "comments",
		Get:  func(a *models.Asset) any { return a.Comments },
		Set:  func(a *models.Asset, v any) { a.Comments = CoerceString(v) },
	},
	{
		Name: "status_id",
		Kind: KindRef,
		Get:  func(a *models.Asset) any { return derefID(a.StatusID) },
		Set:  func(a *models.Asset, v any) { a.StatusID = CoerceID(v) },
	},
	{
		Name: "diagonal",
		Get:  func(a *models.Asset) any { return a.Diagonal },
		Set:  func(a *models.Asset, v any) { a.Diagonal = CoerceString(v) },
	},
	{
		Name: "CPU",
		Get:  func(a *models.Asset) any { return a.CPU },
		Set:  func(a *models.Asset, v any) { a.CPU = CoerceString(v) },
	},
	{
		Name: "RAM",
		Get:  func(a *models.Asset) any { return a.RAM },
		Set:  func(a *models.Asset, v any) { a.RAM = CoerceString(v) },
	},
	{
		Name: "Drive",
		Get:  func(a *models.Asset) any { return a.Drive },
		Set:  func(a *models.Asset, v any) { a.Drive = CoerceString(v) },
	},
	{
		Name: "OS",
		Get:  func(a *models.Asset) any { return a.OS },
		Set:  func(a *models.Asset, v any) { a.OS = CoerceString(v) },
	},
	{
		Name: "IP_address",
		Get:  func(a *models.Asset) any { return a.IPAddress },
		Set:  func(a *models.Asset, v any) { a.IPAddress = CoerceString(v) },
	},
	{
		Name: "number",
		Get:  func(a *models.Asset) any { return a.Number },
		Set:  func(a *models.Asset, v any) { a.Number = CoerceString(v) },
	},
}

var fieldIndex = func() map[string]*Field {
	m := make(map[string]*Field, len(assetFields))
	for i := range assetFields {
		m[assetFields[i].Name] = &assetFields[i]
	}
	return m
}()

// Fields возвращает таблицу отслеживаемых полей в стабильном порядке.
func Fields() []Field {
	return assetFields
}

// FieldByName ищет поле по имени из API.
func FieldByName(name string) (*Field, bool) {
	f, ok := fieldIndex[name]
	return f, ok
}

// Snapshot снимает значения всех отслеживаемых полей до мутации.
func Snapshot(a *models.Asset) map[string]any {
	m := make(map[string]any, len(assetFields))
	for i := range assetFields {
		m[assetFields[i].Name] = assetFields[i].Get(a)
	}
	return m
}

// Equal сравнивает старое и новое значение по правилам вида поля.
func (f *Field) Equal(oldV, newV any) bool {
	switch f.Kind {
	case KindRef:
		return idEqual(CoerceID(oldV), CoerceID(newV))
	case KindDate:
		od, okOld := CoerceDate(oldV)
		nd, okNew := CoerceDate(newV)
		if !okOld || !okNew {
			// дата не разобралась — сравниваем как есть
			return CoerceString(oldV) == CoerceString(newV)
		}
		return datesEqual(od, nd)
	default:
		return CoerceString(oldV) == CoerceString(newV)
	}
}

func idEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func datesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return (a == nil) == (b == nil)
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func derefID(p *uint) any {
	if p == nil {
		return nil
	}
	return *p
}

// CoerceID приводит значение из JSON к ID справочника.
// Пустые и нечисловые значения считаются «не задано».
func CoerceID(v any) *uint {
	switch x := v.(type) {
	case nil:
		return nil
	case uint:
		return &x
	case *uint:
		if x == nil {
			return nil
		}
		id := *x
		return &id
	case int:
		if x < 0 {
			return nil
		}
		id := uint(x)
		return &id
	case int64:
		if x < 0 {
			return nil
		}
		id := uint(x)
		return &id
	case float64:
		if x < 0 || x != float64(uint(x)) {
			return nil
		}
		id := uint(x)
		return &id
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil
		}
		id := uint(n)
		return &id
	default:
		return nil
	}
}

// CoerceString приводит произвольное значение JSON к строке.
func CoerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}

// CoerceDate нормализует значение даты: time.Time или строка
// YYYY-MM-DD (допускается полный RFC3339). Второй результат — признак
// того, что значение вообще удалось разобрать как дату.
func CoerceDate(v any) (*time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case time.Time:
		d := dateOnly(x)
		return &d, true
	case *time.Time:
		if x == nil {
			return nil, true
		}
		d := dateOnly(*x)
		return &d, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, true
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			t, err = time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, false
			}
		}
		d := dateOnly(t)
		return &d, true
	default:
		return nil, false
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
