package models

import "time"

// Change — неизменяемая запись журнала изменений актива.
// Инвентарный номер и имя актива денормализованы: фиксируются на
// момент изменения и не зависят от дальнейшей судьбы актива.
type Change struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AssetID         *uint     `json:"asset_id"`
	Asset           *Asset    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	InventoryNumber string    `gorm:"size:50" json:"inventory_number"`
	AssetName       string    `gorm:"size:200" json:"asset_name"`
	Action          string    `gorm:"size:50" json:"action"`
	Field           string    `gorm:"size:100" json:"field"`
	OldValue        string    `gorm:"type:text" json:"old_value"`
	NewValue        string    `gorm:"type:text" json:"new_value"`
	ChangedAt       time.Time `gorm:"autoCreateTime" json:"-"`
}

func (c *Change) ToResponse() map[string]any {
	var changedAt any
	if !c.ChangedAt.IsZero() {
		changedAt = c.ChangedAt.Format("02.01.2006 15:04:05")
	}
	return map[string]any{
		"id":               c.ID,
		"asset_id":         c.AssetID,
		"inventory_number": c.InventoryNumber,
		"asset_name":       c.AssetName,
		"action":           c.Action,
		"field":            c.Field,
		"old_value":        c.OldValue,
		"new_value":        c.NewValue,
		"changed_at":       changedAt,
	}
}
