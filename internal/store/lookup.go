package store

import (
	"it-inventory/internal/audit"
	"it-inventory/internal/models"

	"gorm.io/gorm"
)

// gormLookup — реализация audit.Lookup поверх произвольного хэндла
// gorm (в том числе транзакции).
type gormLookup struct {
	db *gorm.DB
}

func NewLookup(db *gorm.DB) audit.Lookup {
	return &gormLookup{db: db}
}

func (l *gormLookup) TypeName(id uint) (string, bool) {
	var t models.Type
	if err := l.db.Select("name").First(&t, id).Error; err != nil {
		return "", false
	}
	return t.Name, true
}

func (l *gormLookup) DepartmentName(id uint) (string, bool) {
	var d models.Department
	if err := l.db.Select("name").First(&d, id).Error; err != nil {
		return "", false
	}
	return d.Name, true
}

func (l *gormLookup) StatusName(id uint) (string, bool) {
	var s models.Status
	if err := l.db.Select("name").First(&s, id).Error; err != nil {
		return "", false
	}
	return s.Name, true
}

func (l *gormLookup) EmployeeName(id uint) (string, bool) {
	var e models.Employee
	if err := l.db.Select("name").First(&e, id).Error; err != nil {
		return "", false
	}
	return e.Name, true
}
