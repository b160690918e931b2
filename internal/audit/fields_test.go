package audit

import (
	"testing"
	"time"

	"it-inventory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestCoerceID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *uint
	}{
		{"nil", nil, nil},
		{"json number", float64(7), uintPtr(7)},
		{"json number fractional", float64(7.5), nil},
		{"negative", float64(-1), nil},
		{"numeric string", "12", uintPtr(12)},
		{"padded string", "  3 ", uintPtr(3)},
		{"empty string", "", nil},
		{"non-numeric string", "abc", nil},
		{"int", 5, uintPtr(5)},
		{"uint", uint(9), uintPtr(9)},
		{"bool", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceID(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestCoerceDate(t *testing.T) {
	d, ok := CoerceDate("2024-03-15")
	require.True(t, ok)
	require.NotNil(t, d)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	d, ok = CoerceDate("2024-03-15T10:30:00Z")
	require.True(t, ok)
	require.NotNil(t, d)
	assert.Equal(t, 15, d.Day())
	assert.Zero(t, d.Hour())

	d, ok = CoerceDate(nil)
	assert.True(t, ok)
	assert.Nil(t, d)

	d, ok = CoerceDate("")
	assert.True(t, ok)
	assert.Nil(t, d)

	_, ok = CoerceDate("15.03.2024")
	assert.False(t, ok)

	_, ok = CoerceDate(float64(42))
	assert.False(t, ok)
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "", CoerceString(nil))
	assert.Equal(t, "hello", CoerceString("hello"))
	assert.Equal(t, "42", CoerceString(float64(42)))
	assert.Equal(t, "3.5", CoerceString(float64(3.5)))
	assert.Equal(t, "2024-03-15", CoerceString(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)))
}

func TestFieldEqual(t *testing.T) {
	room, ok := FieldByName("room")
	require.True(t, ok)
	assert.True(t, room.Equal("101", "101"))
	assert.False(t, room.Equal("101", "102"))
	// nil и пустая строка равнозначны для текста
	assert.True(t, room.Equal(nil, ""))

	dept, ok := FieldByName("department_id")
	require.True(t, ok)
	// ID из базы приходит как uint, из JSON как float64
	assert.True(t, dept.Equal(uint(3), float64(3)))
	assert.True(t, dept.Equal(uint(3), "3"))
	assert.False(t, dept.Equal(uint(3), float64(4)))
	assert.True(t, dept.Equal(nil, nil))
	assert.False(t, dept.Equal(nil, float64(1)))

	date, ok := FieldByName("purchase_date")
	require.True(t, ok)
	stored := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, date.Equal(stored, "2024-03-15"))
	assert.False(t, date.Equal(stored, "2024-03-16"))
	assert.True(t, date.Equal(nil, ""))
}

func TestSnapshotRoundTrip(t *testing.T) {
	dept := uint(2)
	date := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	a := &models.Asset{
		InventoryNumber: "INV-100",
		Brand:           "Dell",
		Model:           "X1",
		TypeID:          1,
		DepartmentID:    &dept,
		Room:            "101",
		PurchaseDate:    &date,
	}

	snap := Snapshot(a)
	assert.Equal(t, "INV-100", snap["inventory_number"])
	assert.Equal(t, uint(1), snap["type_id"])
	assert.Equal(t, uint(2), snap["department_id"])
	assert.Nil(t, snap["status_id"])

	// неизменённый вход не даёт диффа
	input := map[string]any{
		"inventory_number": "INV-100",
		"type_id":          float64(1),
		"department_id":    float64(2),
		"room":             "101",
		"purchase_date":    "2023-01-10",
	}
	assert.Empty(t, Diff(snap, input))
}

func TestDiffOrderAndFiltering(t *testing.T) {
	a := &models.Asset{InventoryNumber: "INV-1", TypeID: 1, Room: "101", Brand: "HP"}
	snap := Snapshot(a)

	input := map[string]any{
		"room":        "204",
		"brand":       "Lenovo",
		"unknown_key": "ignored",
		"type_id":     float64(1), // не изменился
	}
	changes := Diff(snap, input)
	require.Len(t, changes, 2)
	// порядок таблицы полей: brand раньше room
	assert.Equal(t, "brand", changes[0].Field)
	assert.Equal(t, "room", changes[1].Field)
	assert.Equal(t, "101", changes[1].Old)
	assert.Equal(t, "204", changes[1].New)
}

func TestApply(t *testing.T) {
	a := &models.Asset{Room: "101", TypeID: 1}
	Apply(a, []FieldChange{
		{Field: "room", New: "204"},
		{Field: "department_id", New: float64(5)},
		{Field: "purchase_date", New: "2024-06-01"},
	})
	assert.Equal(t, "204", a.Room)
	require.NotNil(t, a.DepartmentID)
	assert.Equal(t, uint(5), *a.DepartmentID)
	require.NotNil(t, a.PurchaseDate)
	assert.Equal(t, "2024-06-01", a.PurchaseDate.Format("2006-01-02"))
}
