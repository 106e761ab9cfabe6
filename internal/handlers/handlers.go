package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"poster_events/internal/models"
	"poster_events/internal/response"
)

// Extractor обрабатывает изображение афиши и сохраняет мероприятие.
type Extractor interface {
	Extract(ctx context.Context, img []byte) (*models.Poster, error)
}

// EventQuerier выполняет запросы чтения к сохранённым мероприятиям.
type EventQuerier interface {
	Upcoming(ctx context.Context) ([]models.Poster, error)
	ByLocation(ctx context.Context, substr string, upcomingOnly bool) ([]models.Poster, error)
	ByVenue(ctx context.Context, substr string, upcomingOnly bool) ([]models.Poster, error)
	ByDepartment(ctx context.Context, substr string, upcomingOnly bool) ([]models.Poster, error)
	ByDate(ctx context.Context, date time.Time) ([]models.Poster, error)
}

// Handler содержит зависимости HTTP-обработчиков.
type Handler struct {
	extractor Extractor
	events    EventQuerier
	maxUpload int64
	health    func(ctx context.Context) error
}

// New создаёт обработчики. maxUploadBytes ограничивает размер тела запроса на загрузку;
// health может быть nil.
func New(extractor Extractor, events EventQuerier, maxUploadBytes int64, health func(ctx context.Context) error) *Handler {
	return &Handler{
		extractor: extractor,
		events:    events,
		maxUpload: maxUploadBytes,
		health:    health,
	}
}

// Register регистрирует маршруты. uploadMiddleware выполняется только для загрузки афиш.
func (h *Handler) Register(r gin.IRouter, uploadMiddleware ...gin.HandlerFunc) {
	upload := append(append([]gin.HandlerFunc{}, uploadMiddleware...), h.AnalyzePoster)
	r.POST("/analyze-poster", upload...)

	events := r.Group("/events")
	{
		events.GET("/upcoming", h.GetUpcoming)
		events.GET("/by-location/:location", h.GetByLocation)
		events.GET("/by-date/:date", h.GetByDate)
		events.GET("/by-venue/:venue", h.GetByVenue)
		events.GET("/by-department/:department", h.GetByDepartment)
	}

	r.GET("/healthz", h.Health)
}

// Health проверяет доступность базы данных
// @Summary		Проверка состояния
// @Tags			service
// @Produce		json
// @Success		200	{object}	response.HealthResponse
// @Failure		503	{object}	response.ErrorResponse	"База данных недоступна (DB_UNAVAILABLE)"
// @Router			/healthz [get]
func (h *Handler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{
				Code:    "DB_UNAVAILABLE",
				Message: "База данных недоступна",
				Details: err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
