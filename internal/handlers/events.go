package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"poster_events/internal/extract"
	"poster_events/internal/models"
	"poster_events/internal/response"
)

// GetUpcoming возвращает предстоящие мероприятия
// @Summary		Предстоящие мероприятия
// @Description	Мероприятия с датой не раньше сегодняшней, по возрастанию даты
// @Tags			events
// @Produce		json
// @Success		200	{array}		response.EventResponse
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/events/upcoming [get]
func (h *Handler) GetUpcoming(c *gin.Context) {
	posters, err := h.events.Upcoming(c.Request.Context())
	h.writeEvents(c, posters, err)
}

// GetByLocation ищет мероприятия по месту проведения
// @Summary		Поиск по месту
// @Description	Поиск подстроки в поле location без учёта регистра
// @Tags			events
// @Produce		json
// @Param			location		path		string	true	"Подстрока места"
// @Param			upcoming_only	query		bool	false	"Только предстоящие"
// @Success		200	{array}		response.EventResponse
// @Failure		400	{object}	response.ErrorResponse	"Некорректный параметр (INVALID_QUERY)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/events/by-location/{location} [get]
func (h *Handler) GetByLocation(c *gin.Context) {
	upcomingOnly, ok := upcomingOnlyParam(c)
	if !ok {
		return
	}
	posters, err := h.events.ByLocation(c.Request.Context(), c.Param("location"), upcomingOnly)
	h.writeEvents(c, posters, err)
}

// GetByVenue ищет мероприятия по площадке
// @Summary		Поиск по площадке
// @Description	Поиск подстроки в поле venue без учёта регистра
// @Tags			events
// @Produce		json
// @Param			venue			path		string	true	"Подстрока площадки"
// @Param			upcoming_only	query		bool	false	"Только предстоящие"
// @Success		200	{array}		response.EventResponse
// @Failure		400	{object}	response.ErrorResponse	"Некорректный параметр (INVALID_QUERY)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/events/by-venue/{venue} [get]
func (h *Handler) GetByVenue(c *gin.Context) {
	upcomingOnly, ok := upcomingOnlyParam(c)
	if !ok {
		return
	}
	posters, err := h.events.ByVenue(c.Request.Context(), c.Param("venue"), upcomingOnly)
	h.writeEvents(c, posters, err)
}

// GetByDepartment ищет мероприятия по организующей кафедре
// @Summary		Поиск по кафедре
// @Description	Поиск подстроки в поле hosted_department без учёта регистра
// @Tags			events
// @Produce		json
// @Param			department		path		string	true	"Подстрока названия кафедры"
// @Param			upcoming_only	query		bool	false	"Только предстоящие"
// @Success		200	{array}		response.EventResponse
// @Failure		400	{object}	response.ErrorResponse	"Некорректный параметр (INVALID_QUERY)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/events/by-department/{department} [get]
func (h *Handler) GetByDepartment(c *gin.Context) {
	upcomingOnly, ok := upcomingOnlyParam(c)
	if !ok {
		return
	}
	posters, err := h.events.ByDepartment(c.Request.Context(), c.Param("department"), upcomingOnly)
	h.writeEvents(c, posters, err)
}

// GetByDate возвращает мероприятия на дату
// @Summary		Мероприятия на дату
// @Description	Мероприятия на указанную дату по возрастанию времени; без времени — в конце списка
// @Tags			events
// @Produce		json
// @Param			date	path		string	true	"Дата в формате YYYY-MM-DD"
// @Success		200	{array}		response.EventResponse
// @Failure		400	{object}	response.ErrorResponse	"Некорректная дата (INVALID_DATE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/events/by-date/{date} [get]
func (h *Handler) GetByDate(c *gin.Context) {
	raw := c.Param("date")
	date, err := time.Parse(extract.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATE",
			Message: "Некорректный формат даты. Используйте YYYY-MM-DD",
			Details: fmt.Sprintf("date %q", raw),
		})
		return
	}

	posters, err := h.events.ByDate(c.Request.Context(), date)
	h.writeEvents(c, posters, err)
}

func (h *Handler) writeEvents(c *gin.Context, posters []models.Poster, err error) {
	if err != nil {
		log.Printf("[%s] Ошибка получения мероприятий: %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка получения мероприятий",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, response.NewEvents(posters))
}

// upcomingOnlyParam разбирает ?upcoming_only. По умолчанию false.
// При ошибке ответ уже записан.
func upcomingOnlyParam(c *gin.Context) (bool, bool) {
	raw, ok := c.GetQuery("upcoming_only")
	if !ok {
		return false, true
	}
	v, err := parseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_QUERY",
			Message: "Параметр upcoming_only должен быть логическим значением",
			Details: err.Error(),
		})
		return false, false
	}
	return v, true
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(raw)
}
