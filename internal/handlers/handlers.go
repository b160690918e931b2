package handlers

import (
	"net/http"
	"strconv"

	"it-inventory/internal/config"
	"it-inventory/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers — обработчики API. Все зависимости передаются явно.
type Handlers struct {
	cfg     *config.Config
	log     *zap.Logger
	assets  *store.AssetStore
	needs   *store.NeedStore
	refs    *store.RefStore
	changes *store.ChangeStore
	users   *store.UserStore
}

func New(cfg *config.Config, log *zap.Logger, db *gorm.DB) *Handlers {
	return &Handlers{
		cfg:     cfg,
		log:     log,
		assets:  store.NewAssetStore(db, log),
		needs:   store.NewNeedStore(db),
		refs:    store.NewRefStore(db),
		changes: store.NewChangeStore(db),
		users:   store.NewUserStore(db),
	}
}

// parseID читает числовой :id из пути; нечисловой ID равнозначен
// отсутствующей записи.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Запись не найдена"})
		return 0, false
	}
	return uint(id), true
}

// bindJSON читает тело запроса в карту; пустое тело — ошибка клиента.
func bindJSON(c *gin.Context, emptyMsg string) (map[string]any, bool) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": emptyMsg})
		return nil, false
	}
	return data, true
}

// parseIDList разбирает список ID пакетной операции.
// Каждый элемент обязан быть целым числом (допускается строка с числом).
func parseIDList(v any) ([]uint, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	ids := make([]uint, 0, len(raw))
	for _, item := range raw {
		switch x := item.(type) {
		case float64:
			if x < 0 || x != float64(uint(x)) {
				return nil, false
			}
			ids = append(ids, uint(x))
		case string:
			n, err := strconv.ParseUint(x, 10, 32)
			if err != nil {
				return nil, false
			}
			ids = append(ids, uint(n))
		default:
			return nil, false
		}
	}
	return ids, true
}

// isMissing — «обязательное поле не заполнено»: отсутствие, null,
// пустая строка или нулевое число.
func isMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case float64:
		return x == 0
	case bool:
		return !x
	}
	return false
}
