package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ZamarianPatrick/oasis-backend/catalog"
	"github.com/ZamarianPatrick/oasis-backend/garden"
	"github.com/ZamarianPatrick/oasis-backend/model"
	"github.com/ZamarianPatrick/oasis-backend/providers"
	"github.com/ZamarianPatrick/oasis-backend/store"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

const catalogCacheKey = "catalog"

var ErrNoSelection = errors.New("index or name is required")

type Offering struct {
	Index      int                   `json:"index"`
	Selectable bool                  `json:"selectable"`
	Prompt     string                `json:"prompt,omitempty"`
	Definition model.PlantDefinition `json:"definition"`
}

type Handler struct {
	garden     *garden.Garden
	controller Controller
	cache      providers.CacheProviderInterface
	logger     providers.Logger
	started    time.Time
}

// Offerings describes every catalog entry together with its confirmation
// prompt. The placeholder is listed but not selectable.
func Offerings(cat *catalog.Catalog) []Offering {
	defs := cat.ListOfferings()
	offerings := make([]Offering, len(defs))
	for i, def := range defs {
		offerings[i] = Offering{
			Index:      i,
			Selectable: !def.IsPlaceholder(),
			Definition: def,
		}
		if offerings[i].Selectable {
			offerings[i].Prompt = garden.ConfirmationPrompt(def)
		}
	}
	return offerings
}

// Select resolves a replacement request to a catalog entry, by index first.
func Select(cat *catalog.Catalog, input model.ReplaceInput) (model.PlantDefinition, error) {
	switch {
	case input.Index != nil:
		return cat.At(*input.Index)
	case input.Name != "":
		return cat.Lookup(input.Name)
	default:
		return model.PlantDefinition{}, ErrNoSelection
	}
}

func NewHandler(g *garden.Garden, controller Controller, cache providers.CacheProviderInterface, logger providers.Logger) *Handler {
	return &Handler{
		garden:     g,
		controller: controller,
		cache:      cache,
		logger:     logger,
		started:    time.Now(),
	}
}

func writeJSON(c *gin.Context, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var (
		nre *garden.NotReadyError
		pe  *garden.PersistenceError
		iv  *store.InvariantViolation
	)

	switch {
	case errors.As(err, &nre):
		writeJSON(c, http.StatusConflict, gin.H{
			"title": garden.NotReadyTitle,
			"error": garden.NotReadyMessage,
			"phase": nre.Phase,
		})
	case errors.Is(err, catalog.ErrUnknownPlant):
		writeJSON(c, http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, garden.ErrInvalidAmount), errors.Is(err, garden.ErrNicknameLength), errors.Is(err, ErrNoSelection):
		writeJSON(c, http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &iv):
		h.logger.Errorf(providers.TypeHTTP, "%s %s: %s", c.Request.Method, c.FullPath(), err)
		writeJSON(c, http.StatusInternalServerError, gin.H{"error": "plant data is inconsistent"})
	case errors.As(err, &pe):
		h.logger.Errorf(providers.TypeHTTP, "%s %s: %s", c.Request.Method, c.FullPath(), err)
		writeJSON(c, http.StatusInternalServerError, gin.H{"error": "could not save your plant, try again"})
	default:
		h.logger.Errorf(providers.TypeHTTP, "%s %s: %s", c.Request.Method, c.FullPath(), err)
		writeJSON(c, http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) Catalog(c *gin.Context) {
	if data, ok := h.cache.Get(catalogCacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	data, err := json.Marshal(Offerings(h.garden.Catalog()))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Set(catalogCacheKey, data)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handler) CurrentPlant(c *gin.Context) {
	p, err := h.garden.Current(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *Handler) History(c *gin.Context) {
	plants, err := h.garden.History(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, plants)
}

func (h *Handler) Water(c *gin.Context) {
	var input model.WaterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeJSON(c, http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.garden.Water(c.Request.Context(), input.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *Handler) Rename(c *gin.Context) {
	var input model.RenameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeJSON(c, http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.garden.Rename(c.Request.Context(), input.Nickname)
	if err != nil {
		h.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *Handler) Replace(c *gin.Context) {
	var input model.ReplaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeJSON(c, http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	def, err := Select(h.garden.Catalog(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.garden.RequestReplacement(c.Request.Context(), def, garden.Answer(input.Confirm))
	if err != nil {
		h.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func (h *Handler) Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"subscribers":    h.controller.Subscribers(),
		"offerings":      h.garden.Catalog().Len(),
	})
}
