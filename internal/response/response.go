package response

import (
	"time"

	"poster_events/internal/models"
)

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: INVALID_DATETIME
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Некорректная дата или время в ответе модели
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: invalid event_date "13/01/2024"
	Details string `json:"details,omitempty"`
}

// EventResponse — мероприятие в том виде, в котором его отдают эндпоинты чтения
type EventResponse struct {
	ID               uint    `json:"id" example:"1"`
	Title            *string `json:"title" example:"Annual Tech Fest"`
	Name             *string `json:"name" example:"Coding Club"`
	Location         *string `json:"location" example:"City Hall"`
	Socials          *string `json:"socials" example:"@codingclub"`
	EventDate        *string `json:"event_date" example:"2024-06-15"`
	EventTime        *string `json:"event_time" example:"17:30:00"`
	Venue            *string `json:"venue" example:"Main Auditorium"`
	HostedDepartment *string `json:"hosted_department" example:"Computer Science"`
}

// AnalyzeResponse — ответ на загрузку афиши
type AnalyzeResponse struct {
	Message string        `json:"message" example:"Афиша успешно обработана"`
	Data    EventResponse `json:"data"`
}

// HealthResponse — ответ проверки состояния
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// NewEvent переводит модель в ответ API: дата YYYY-MM-DD, время HH:MM:SS или null.
func NewEvent(p *models.Poster) EventResponse {
	resp := EventResponse{
		ID:               p.ID,
		Title:            p.Title,
		Name:             p.Name,
		Location:         p.Location,
		Socials:          p.Socials,
		Venue:            p.Venue,
		HostedDepartment: p.HostedDepartment,
	}
	if p.EventDate != nil {
		d := time.Time(*p.EventDate).Format("2006-01-02")
		resp.EventDate = &d
	}
	if p.EventTime != nil {
		t := p.EventTime.String()
		resp.EventTime = &t
	}
	return resp
}

// NewEvents никогда не возвращает nil, чтобы пустой список сериализовался как [].
func NewEvents(posters []models.Poster) []EventResponse {
	out := make([]EventResponse, 0, len(posters))
	for i := range posters {
		out = append(out, NewEvent(&posters[i]))
	}
	return out
}
