package store

import (
	"context"
	"errors"

	"it-inventory/internal/models"

	"gorm.io/gorm"
)

// RefStore — справочники: типы, свойства, статусы, отделы, сотрудники.
type RefStore struct {
	db *gorm.DB
}

func NewRefStore(db *gorm.DB) *RefStore {
	return &RefStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- Типы устройств ---

func (s *RefStore) ListTypes(ctx context.Context) ([]models.Type, error) {
	var types []models.Type
	err := s.db.WithContext(ctx).Find(&types).Error
	return types, err
}

func (s *RefStore) CreateType(ctx context.Context, name string) (*models.Type, error) {
	t := models.Type{Name: name}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *RefStore) UpdateType(ctx context.Context, id uint, name string) (*models.Type, error) {
	var t models.Type
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	t.Name = name
	if err := s.db.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *RefStore) DeleteType(ctx context.Context, id uint) error {
	var t models.Type
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Select("Properties").Delete(&t).Error
}

// TypeProperties возвращает свойства, привязанные к типу.
func (s *RefStore) TypeProperties(ctx context.Context, typeID uint) ([]models.Property, error) {
	var t models.Type
	if err := s.db.WithContext(ctx).Preload("Properties").First(&t, typeID).Error; err != nil {
		return nil, notFound(err)
	}
	return t.Properties, nil
}

// ReplaceTypeProperties целиком заменяет набор свойств типа.
// Все переданные ID обязаны существовать.
func (s *RefStore) ReplaceTypeProperties(ctx context.Context, typeID uint, propertyIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Type
		if err := tx.First(&t, typeID).Error; err != nil {
			return notFound(err)
		}
		var props []models.Property
		if len(propertyIDs) > 0 {
			if err := tx.Where("id IN ?", propertyIDs).Find(&props).Error; err != nil {
				return err
			}
		}
		if len(props) != len(uniqueIDs(propertyIDs)) {
			return &ValidationError{Message: "Некоторые свойства не найдены"}
		}
		return tx.Model(&t).Association("Properties").Replace(props)
	})
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// --- Свойства ---

func (s *RefStore) ListProperties(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	err := s.db.WithContext(ctx).Find(&props).Error
	return props, err
}

func (s *RefStore) CreateProperty(ctx context.Context, name string) (*models.Property, error) {
	p := models.Property{Name: name}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RefStore) UpdateProperty(ctx context.Context, id uint, name string) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	p.Name = name
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RefStore) DeleteProperty(ctx context.Context, id uint) error {
	var p models.Property
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Select("Types").Delete(&p).Error
}

// --- Статусы ---

func (s *RefStore) ListStatuses(ctx context.Context) ([]models.Status, error) {
	var statuses []models.Status
	err := s.db.WithContext(ctx).Find(&statuses).Error
	return statuses, err
}

func (s *RefStore) CreateStatus(ctx context.Context, name string) (*models.Status, error) {
	st := models.Status{Name: name}
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *RefStore) UpdateStatus(ctx context.Context, id uint, name string) (*models.Status, error) {
	var st models.Status
	if err := s.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, notFound(err)
	}
	st.Name = name
	if err := s.db.WithContext(ctx).Save(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *RefStore) DeleteStatus(ctx context.Context, id uint) error {
	var st models.Status
	if err := s.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Delete(&st).Error
}

// --- Отделы ---

func (s *RefStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := s.db.WithContext(ctx).Find(&departments).Error
	return departments, err
}

func (s *RefStore) CreateDepartment(ctx context.Context, name string) (*models.Department, error) {
	d := models.Department{Name: name}
	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *RefStore) UpdateDepartment(ctx context.Context, id uint, name string) (*models.Department, error) {
	var d models.Department
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, notFound(err)
	}
	d.Name = name
	if err := s.db.WithContext(ctx).Save(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *RefStore) DeleteDepartment(ctx context.Context, id uint) error {
	var d models.Department
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Delete(&d).Error
}

// --- Сотрудники ---

func (s *RefStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.WithContext(ctx).Preload("Department").Find(&employees).Error
	return employees, err
}

func (s *RefStore) CreateEmployee(ctx context.Context, name string, departmentID uint) (*models.Employee, error) {
	e := models.Employee{Name: name, DepartmentID: &departmentID}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return s.getEmployee(ctx, e.ID)
}

func (s *RefStore) UpdateEmployee(ctx context.Context, id uint, name string, departmentID uint) (*models.Employee, error) {
	var e models.Employee
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, notFound(err)
	}
	e.Name = name
	e.DepartmentID = &departmentID
	if err := s.db.WithContext(ctx).Save(&e).Error; err != nil {
		return nil, err
	}
	return s.getEmployee(ctx, id)
}

func (s *RefStore) DeleteEmployee(ctx context.Context, id uint) error {
	var e models.Employee
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Delete(&e).Error
}

func (s *RefStore) getEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	var e models.Employee
	if err := s.db.WithContext(ctx).Preload("Department").First(&e, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}
