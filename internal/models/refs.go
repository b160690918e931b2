package models

// Справочники: отделы, статусы, типы устройств, свойства, сотрудники.
// Имена уникальны, актив ссылается на них по ID.

type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

type Status struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

type Property struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`

	Types []Type `gorm:"many2many:type_properties" json:"-"`
}

type Type struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`

	// применимые к типу пользовательские атрибуты
	Properties []Property `gorm:"many2many:type_properties" json:"-"`
}

type Employee struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:100;not null" json:"name"`
	DepartmentID *uint       `json:"department_id"`
	Department   *Department `json:"-"`
}
