package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"it-inventory/internal/audit"
	"it-inventory/internal/models"
	"it-inventory/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) ListNeeds(c *gin.Context) {
	needs, err := h.needs.List(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list needs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}
	out := make([]map[string]any, 0, len(needs))
	for i := range needs {
		out = append(out, needs[i].ToResponse())
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) GetNeed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	n, err := h.needs.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Потребность не найдена"})
		return
	}
	c.JSON(http.StatusOK, n.ToResponse())
}

func (h *Handlers) CreateNeed(c *gin.Context) {
	data, ok := bindJSON(c, "Нет данных для создания потребности")
	if !ok {
		return
	}

	var missing []string
	for _, f := range []string{"department_id", "asset_type_id", "quantity", "reason_date", "status"} {
		if isMissing(data[f]) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствуют обязательные поля", "missing": missing})
		return
	}

	fieldErrors := map[string]string{}

	deptID := audit.CoerceID(data["department_id"])
	if deptID == nil {
		fieldErrors["department_id"] = "Неверный формат для department_id"
	}
	typeID := audit.CoerceID(data["asset_type_id"])
	if typeID == nil {
		fieldErrors["asset_type_id"] = "Неверный формат для asset_type_id"
	}
	quantity, ok := coerceQuantity(data["quantity"])
	if !ok {
		fieldErrors["quantity"] = "Количество должно быть положительным"
	}
	reasonDate, ok := audit.CoerceDate(data["reason_date"])
	if !ok || reasonDate == nil {
		fieldErrors["reason_date"] = "Неверный формат для reason_date"
	}
	status := strings.TrimSpace(audit.CoerceString(data["status"]))
	if status == "" {
		fieldErrors["status"] = "Статус не может быть пустым"
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка в данных", "details": fieldErrors})
		return
	}

	n := models.Need{
		DepartmentID: *deptID,
		AssetTypeID:  *typeID,
		Quantity:     quantity,
		ReasonDate:   *reasonDate,
		Status:       status,
	}
	if note := strings.TrimSpace(audit.CoerceString(data["note"])); note != "" {
		n.Note = &note
	}

	if err := h.needs.Create(c.Request.Context(), &n); err != nil {
		if store.IsIntegrity(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Ошибка данных",
				"details": "Ссылка на несуществующий отдел или тип.",
			})
			return
		}
		h.log.Error("failed to create need", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать потребность", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, n.ToResponse())
}

func (h *Handlers) UpdateNeed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, ok := bindJSON(c, "Нет данных для обновления")
	if !ok {
		return
	}

	n, err := h.needs.Update(c.Request.Context(), id, data)
	if err != nil {
		var vErr *store.ValidationError
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Потребность не найдена"})
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "details": vErr.Fields})
		case store.IsIntegrity(err):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Ошибка данных",
				"details": "Ссылка на несуществующий отдел или тип.",
			})
		default:
			h.log.Error("failed to update need", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, n.ToResponse())
}

func (h *Handlers) DeleteNeed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.needs.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Потребность не найдена"})
			return
		}
		h.log.Error("failed to delete need", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить потребность", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Потребность удалена"})
}

// BatchDeleteNeeds удаляет заявки списком; в ответе фактическое число
// удалённых строк.
func (h *Handlers) BatchDeleteNeeds(c *gin.Context) {
	data, ok := bindJSON(c, "Список ID не предоставлен или имеет неверный формат")
	if !ok {
		return
	}
	ids, ok := parseIDList(data["ids"])
	if !ok || len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Список ID не предоставлен или имеет неверный формат"})
		return
	}

	count, err := h.needs.BatchDelete(c.Request.Context(), ids)
	if err != nil {
		h.log.Error("failed to batch delete needs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить потребности", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Удалено %d потребностей", count)})
}

// BatchUpdateNeeds выставляет статус заявкам списком.
func (h *Handlers) BatchUpdateNeeds(c *gin.Context) {
	data, ok := bindJSON(c, "Список ID не предоставлен или имеет неверный формат")
	if !ok {
		return
	}
	ids, ok := parseIDList(data["ids"])
	if !ok || len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Список ID не предоставлен или имеет неверный формат"})
		return
	}
	status := strings.TrimSpace(audit.CoerceString(data["status"]))
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Новый статус не предоставлен или пуст"})
		return
	}

	count, err := h.needs.BatchUpdateStatus(c.Request.Context(), ids, status)
	if err != nil {
		h.log.Error("failed to batch update needs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить потребности", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Обновлено %d потребностей", count)})
}

// coerceQuantity — положительное целое из JSON-числа или строки.
func coerceQuantity(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if x != float64(int(x)) || x <= 0 {
			return 0, false
		}
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
