package models

import (
	"fmt"
	"strings"
	"time"
)

const NoTypeName = "Без типа"

// Asset — единица учёта: компьютер, монитор и т.п.
// Имена JSON-полей совпадают с полями журнала изменений.
type Asset struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	SerialNumber      string     `gorm:"size:100" json:"serial_number"`
	InventoryNumber   string     `gorm:"size:100;uniqueIndex;not null" json:"inventory_number"`
	Brand             string     `gorm:"size:255" json:"brand"`
	Model             string     `gorm:"size:255" json:"model"`
	TypeID            uint       `gorm:"not null" json:"type_id"`
	Type              *Type      `gorm:"foreignKey:TypeID" json:"-"`
	DepartmentID      *uint      `json:"department_id"`
	Department        *Department `json:"-"`
	Room              string     `gorm:"size:255" json:"room"`
	PurchaseDate      *time.Time `gorm:"type:date" json:"-"`
	ResponsiblePerson *uint      `json:"responsible_person"`
	Responsible       *Employee  `gorm:"foreignKey:ResponsiblePerson" json:"-"`
	ActualUser        string     `gorm:"size:255" json:"actual_user"`
	Comments          string     `gorm:"type:text" json:"comments"`
	StatusID          *uint      `json:"status_id"`
	Status            *Status    `json:"-"`
	Diagonal          string     `gorm:"size:50" json:"diagonal"`
	CPU               string     `gorm:"column:cpu;size:100" json:"CPU"`
	RAM               string     `gorm:"column:ram;size:50" json:"RAM"`
	Drive             string     `gorm:"size:100" json:"Drive"`
	OS                string     `gorm:"column:os;size:100" json:"OS"`
	IPAddress         string     `gorm:"size:45" json:"IP_address"`
	Number            string     `gorm:"size:50" json:"number"`
}

// TypeName — имя типа по предзагруженной связи, "Без типа" если связи нет.
func (a *Asset) TypeName() string {
	if a.Type != nil {
		return a.Type.Name
	}
	return NoTypeName
}

// FullName — составное имя "<Тип> <Бренд> <Модель>".
func (a *Asset) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", a.TypeName(), a.Brand, a.Model))
}

func (a *Asset) ToResponse() map[string]any {
	var purchaseDate any
	if a.PurchaseDate != nil {
		purchaseDate = a.PurchaseDate.Format("2006-01-02")
	}
	var categoryName any
	if a.Type != nil {
		categoryName = a.Type.Name
	}
	return map[string]any{
		"id":                 a.ID,
		"serial_number":      a.SerialNumber,
		"inventory_number":   a.InventoryNumber,
		"brand":              a.Brand,
		"model":              a.Model,
		"type_id":            a.TypeID,
		"department_id":      a.DepartmentID,
		"room":               a.Room,
		"purchase_date":      purchaseDate,
		"responsible_person": a.ResponsiblePerson,
		"actual_user":        a.ActualUser,
		"comments":           a.Comments,
		"status_id":          a.StatusID,
		"diagonal":           a.Diagonal,
		"CPU":                a.CPU,
		"RAM":                a.RAM,
		"Drive":              a.Drive,
		"OS":                 a.OS,
		"IP_address":         a.IPAddress,
		"number":             a.Number,
		"category_name":      categoryName,
		"full_name":          a.FullName(),
	}
}
