package extract

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"poster_events/internal/models"
	"poster_events/internal/storage"
	"poster_events/internal/timenorm"
)

// DateLayout — единственный допустимый формат event_date.
const DateLayout = "2006-01-02"

// Prompt — инструкция для модели. Ключи JSON совпадают с полями Fields.
const Prompt = `
Please analyze this poster image and extract the following information in JSON format:
- Title of the event
- Name of the organizer/speaker
- Location
- Social media handles
- Date
- Time
- Venue
- Hosting department name

Please format the response as a valid JSON object with these exact keys:
{
    "title": "",
    "name": "",
    "location": "",
    "socials": "",
    "event_date": "", # use this format %Y-%m-%d
    "event_time": "", # use this format %H:%M:%S
    "venue": "",
    "hosted_department": ""
}
Return only the JSON object, nothing else.
`

// Fields — поля, извлечённые моделью. nil означает, что значение отсутствует или пустое.
type Fields struct {
	Title            *string
	Name             *string
	Location         *string
	Socials          *string
	EventDate        *string
	EventTime        *string
	Venue            *string
	HostedDepartment *string
}

// StripCodeFence убирает обёртку ```json ... ```, которую модель часто добавляет к ответу.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseResponse разбирает текст модели. Ошибка — всегда *ModelResponseError.
func ParseResponse(raw string) (*Fields, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &payload); err != nil {
		return nil, &ModelResponseError{Raw: raw, Err: err}
	}
	if payload == nil {
		return nil, &ModelResponseError{Raw: raw, Err: errors.New("expected a JSON object, got null")}
	}

	return &Fields{
		Title:            textValue(payload["title"]),
		Name:             textValue(payload["name"]),
		Location:         textValue(payload["location"]),
		Socials:          textValue(payload["socials"]),
		EventDate:        textValue(payload["event_date"]),
		EventTime:        textValue(payload["event_time"]),
		Venue:            textValue(payload["venue"]),
		HostedDepartment: textValue(payload["hosted_department"]),
	}, nil
}

// textValue приводит значение JSON к строке. Модель иногда отдаёт числа или списки вместо строк.
func textValue(v interface{}) *string {
	var s string
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		s = val
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return nil
		}
		s = string(b)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Normalize проверяет дату и время и собирает запись для сохранения.
// Любая ошибка даты или времени отменяет создание записи целиком.
func (f *Fields) Normalize() (*models.Poster, error) {
	p := &models.Poster{
		Title:            f.Title,
		Name:             f.Name,
		Location:         f.Location,
		Socials:          f.Socials,
		Venue:            f.Venue,
		HostedDepartment: f.HostedDepartment,
	}

	if f.EventDate != nil {
		d, err := time.Parse(DateLayout, *f.EventDate)
		if err != nil {
			return nil, &DateTimeError{Field: "event_date", Value: *f.EventDate, Err: err}
		}
		date := storage.DateOf(d)
		p.EventDate = &date
	}

	if f.EventTime != nil {
		t, err := timenorm.Normalize(*f.EventTime)
		if err != nil {
			return nil, &DateTimeError{Field: "event_time", Value: *f.EventTime, Err: err}
		}
		p.EventTime = &t
	}

	return p, nil
}
