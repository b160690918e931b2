package models

import "time"

// Need — заявка на закупку техники. Живёт отдельно от активов,
// журнал изменений к ней не ведётся.
type Need struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	DepartmentID uint        `gorm:"not null" json:"department_id"`
	Department   *Department `json:"-"`
	AssetTypeID  uint        `gorm:"not null" json:"asset_type_id"`
	AssetType    *Type       `gorm:"foreignKey:AssetTypeID" json:"-"`
	Quantity     int         `gorm:"not null" json:"quantity"`
	ReasonDate   time.Time   `gorm:"type:date" json:"-"`
	Status       string      `gorm:"size:100;not null" json:"status"`
	Note         *string     `gorm:"type:text" json:"note"`
}

func (n *Need) ToResponse() map[string]any {
	var reasonDate any
	if !n.ReasonDate.IsZero() {
		reasonDate = n.ReasonDate.Format("2006-01-02")
	}
	return map[string]any{
		"id":            n.ID,
		"department_id": n.DepartmentID,
		"asset_type_id": n.AssetTypeID,
		"quantity":      n.Quantity,
		"reason_date":   reasonDate,
		"status":        n.Status,
		"note":          n.Note,
	}
}
