package handlers

import (
	"errors"
	"net/http"

	"it-inventory/internal/audit"
	"it-inventory/internal/models"
	"it-inventory/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requireName достаёт обязательное поле name из тела запроса.
func requireName(c *gin.Context, requiredMsg string) (string, bool) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": requiredMsg})
		return "", false
	}
	return body.Name, true
}

func (h *Handlers) refCreated(c *gin.Context, v any, err error, failMsg string) {
	if err != nil {
		if store.IsIntegrity(err) {
			c.JSON(http.StatusConflict, gin.H{"error": failMsg, "details": "Имя уже используется."})
			return
		}
		h.log.Error("failed to create reference row", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg, "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handlers) refUpdated(c *gin.Context, v any, err error, failMsg string) {
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Запись не найдена"})
		case store.IsIntegrity(err):
			c.JSON(http.StatusConflict, gin.H{"error": failMsg, "details": "Имя уже используется."})
		default:
			h.log.Error("failed to update reference row", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg, "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handlers) refDeleted(c *gin.Context, err error, okMsg, inUseMsg string) {
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Запись не найдена"})
		case store.IsIntegrity(err):
			c.JSON(http.StatusConflict, gin.H{"error": inUseMsg})
		default:
			h.log.Error("failed to delete reference row", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": inUseMsg, "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": okMsg})
}

// --- Типы устройств ---

func (h *Handlers) ListTypes(c *gin.Context) {
	types, err := h.refs.ListTypes(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list types", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *Handlers) CreateType(c *gin.Context) {
	name, ok := requireName(c, "Название типа обязательно")
	if !ok {
		return
	}
	t, err := h.refs.CreateType(c.Request.Context(), name)
	h.refCreated(c, t, err, "Не удалось создать тип")
}

func (h *Handlers) UpdateType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	name, ok := requireName(c, "Название типа обязательно")
	if !ok {
		return
	}
	t, err := h.refs.UpdateType(c.Request.Context(), id, name)
	h.refUpdated(c, t, err, "Не удалось обновить тип")
}

func (h *Handlers) DeleteType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.refs.DeleteType(c.Request.Context(), id)
	h.refDeleted(c, err, "Тип удален", "Не удалось удалить тип. Возможно, он используется.")
}

// TypeProperties — свойства, привязанные к типу.
func (h *Handlers) TypeProperties(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	props, err := h.refs.TypeProperties(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип не найден"})
			return
		}
		h.log.Error("failed to load type properties", zap.Uint("type_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}
	c.JSON(http.StatusOK, props)
}

// UpdateTypeProperties заменяет набор свойств типа целиком.
func (h *Handlers) UpdateTypeProperties(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var body struct {
		PropertyIDs []uint `json:"property_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
		return
	}

	err := h.refs.ReplaceTypeProperties(c.Request.Context(), id, body.PropertyIDs)
	if err != nil {
		var vErr *store.ValidationError
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип не найден"})
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
		default:
			h.log.Error("failed to update type properties", zap.Uint("type_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить свойства типа"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Свойства типа обновлены"})
}

// --- Свойства ---

func (h *Handlers) ListProperties(c *gin.Context) {
	props, err := h.refs.ListProperties(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list properties", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}
	c.JSON(http.StatusOK, props)
}

func (h *Handlers) CreateProperty(c *gin.Context) {
	name, ok := requireName(c, "Название свойства обязательно")
	if !ok {
		return
	}
	p, err := h.refs.CreateProperty(c.Request.Context(), name)
	h.refCreated(c, p, err, "Не удалось создать свойство")
}

func (h *Handlers) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	name, ok := requireName(c, "Название свойства обязательно")
	if !ok {
		return
	}
	p, err := h.refs.UpdateProperty(c.Request.Context(), id, name)
	h.refUpdated(c, p, err, "Не удалось обновить свойство")
}

func (h *Handlers) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.refs.DeleteProperty(c.Request.Context(), id)
	h.refDeleted(c, err, "Свойство удалено", "Не удалось удалить свойство. Возможно, оно используется.")
}

// --- Статусы ---

func (h *Handlers) ListStatuses(c *gin.Context) {
	statuses, err := h.refs.ListStatuses(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list statuses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *Handlers) CreateStatus(c *gin.Context) {
	name, ok := requireName(c, "Название статуса обязательно")
	if !ok {
		return
	}
	st, err := h.refs.CreateStatus(c.Request.Context(), name)
	h.refCreated(c, st, err, "Не удалось создать статус")
}

func (h *Handlers) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	name, ok := requireName(c, "Название статуса обязательно")
	if !ok {
		return
	}
	st, err := h.refs.UpdateStatus(c.Request.Context(), id, name)
	h.refUpdated(c, st, err, "Не удалось обновить статус")
}

func (h *Handlers) DeleteStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.refs.DeleteStatus(c.Request.Context(), id)
	h.refDeleted(c, err, "Статус удален", "Не удалось удалить статус. Возможно, он используется.")
}

// --- Отделы ---

func (h *Handlers) ListDepartments(c *gin.Context) {
	departments, err := h.refs.ListDepartments(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list departments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *Handlers) CreateDepartment(c *gin.Context) {
	name, ok := requireName(c, "Название отдела обязательно")
	if !ok {
		return
	}
	d, err := h.refs.CreateDepartment(c.Request.Context(), name)
	h.refCreated(c, d, err, "Не удалось создать отдел")
}

func (h *Handlers) UpdateDepartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	name, ok := requireName(c, "Название отдела обязательно")
	if !ok {
		return
	}
	d, err := h.refs.UpdateDepartment(c.Request.Context(), id, name)
	h.refUpdated(c, d, err, "Не удалось обновить отдел")
}

func (h *Handlers) DeleteDepartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.refs.DeleteDepartment(c.Request.Context(), id)
	h.refDeleted(c, err, "Отдел удален", "Не удалось удалить отдел. Возможно, он используется.")
}

// --- Сотрудники ---

func employeeResponse(e *models.Employee) map[string]any {
	var deptName any
	if e.Department != nil {
		deptName = e.Department.Name
	}
	return map[string]any{
		"id":              e.ID,
		"name":            e.Name,
		"department_id":   e.DepartmentID,
		"department_name": deptName,
	}
}

func (h *Handlers) ListEmployees(c *gin.Context) {
	employees, err := h.refs.ListEmployees(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list employees", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}
	out := make([]map[string]any, 0, len(employees))
	for i := range employees {
		out = append(out, employeeResponse(&employees[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) employeeInput(c *gin.Context) (string, uint, bool) {
	data, ok := bindJSON(c, "Имя и отдел обязательны")
	if !ok {
		return "", 0, false
	}
	name := audit.CoerceString(data["name"])
	deptID := audit.CoerceID(data["department_id"])
	if name == "" || deptID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Имя и отдел обязательны"})
		return "", 0, false
	}
	return name, *deptID, true
}

func (h *Handlers) CreateEmployee(c *gin.Context) {
	name, deptID, ok := h.employeeInput(c)
	if !ok {
		return
	}
	e, err := h.refs.CreateEmployee(c.Request.Context(), name, deptID)
	if err != nil {
		if store.IsIntegrity(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось создать сотрудника", "details": "Отдел не найден."})
			return
		}
		h.log.Error("failed to create employee", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать сотрудника", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, employeeResponse(e))
}

func (h *Handlers) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	name, deptID, ok := h.employeeInput(c)
	if !ok {
		return
	}
	e, err := h.refs.UpdateEmployee(c.Request.Context(), id, name, deptID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Сотрудник не найден"})
		case store.IsIntegrity(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось обновить сотрудника", "details": "Отдел не найден."})
		default:
			h.log.Error("failed to update employee", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить сотрудника", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, employeeResponse(e))
}

func (h *Handlers) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.refs.DeleteEmployee(c.Request.Context(), id)
	h.refDeleted(c, err, "Сотрудник удален", "Не удалось удалить сотрудника. Возможно, он используется.")
}
