package store

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("запись не найдена")

// ValidationError — ошибка входных данных с деталями по полям.
type ValidationError struct {
	Message string
	Missing []string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

// IsIntegrity сообщает, вызвана ли ошибка нарушением ограничений БД
// (дубликат уникального значения, ссылка на занятую или отсутствующую
// строку). Требует TranslateError в конфигурации gorm.
func IsIntegrity(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated)
}
