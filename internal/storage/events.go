package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"poster_events/internal/models"
)

// Колонки, по которым разрешён поиск подстроки.
const (
	columnLocation   = "location"
	columnVenue      = "venue"
	columnDepartment = "hosted_department"
)

// EventStore сохраняет мероприятия и ищет их в таблице posters.
type EventStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEventStore создаёт хранилище поверх уже открытого пула.
func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db, now: time.Now}
}

// WithClock подменяет часы, по которым определяется «сегодня».
func (s *EventStore) WithClock(now func() time.Time) *EventStore {
	s.now = now
	return s
}

// Insert сохраняет мероприятие. ID и CreatedAt выставляются базой и gorm.
func (s *EventStore) Insert(ctx context.Context, p *models.Poster) (*models.Poster, error) {
	p.ID = 0
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("insert poster: %w", err)
	}
	return p, nil
}

// Upcoming возвращает мероприятия с датой не раньше сегодняшней, по возрастанию даты.
func (s *EventStore) Upcoming(ctx context.Context) ([]models.Poster, error) {
	var posters []models.Poster
	err := s.db.WithContext(ctx).
		Where("event_date >= ?", s.Today()).
		Order("event_date").Order("id").
		Find(&posters).Error
	if err != nil {
		return nil, fmt.Errorf("query upcoming: %w", err)
	}
	return posters, nil
}

// CountUpcoming считает предстоящие мероприятия.
func (s *EventStore) CountUpcoming(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Poster{}).
		Where("event_date >= ?", s.Today()).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count upcoming: %w", err)
	}
	return n, nil
}

func (s *EventStore) ByLocation(ctx context.Context, substr string, upcomingOnly bool) ([]models.Poster, error) {
	return s.bySubstring(ctx, columnLocation, substr, upcomingOnly)
}

func (s *EventStore) ByVenue(ctx context.Context, substr string, upcomingOnly bool) ([]models.Poster, error) {
	return s.bySubstring(ctx, columnVenue, substr, upcomingOnly)
}

func (s *EventStore) ByDepartment(ctx context.Context, substr string, upcomingOnly bool) ([]models.Poster, error) {
	return s.bySubstring(ctx, columnDepartment, substr, upcomingOnly)
}

// ByDate возвращает мероприятия на указанную дату, по возрастанию времени.
// Мероприятия без времени идут последними.
func (s *EventStore) ByDate(ctx context.Context, date time.Time) ([]models.Poster, error) {
	var posters []models.Poster
	err := s.db.WithContext(ctx).
		Where("event_date = ?", DateOf(date)).
		Order("event_time IS NULL").Order("event_time").Order("id").
		Find(&posters).Error
	if err != nil {
		return nil, fmt.Errorf("query by date: %w", err)
	}
	return posters, nil
}

func (s *EventStore) bySubstring(ctx context.Context, column, substr string, upcomingOnly bool) ([]models.Poster, error) {
	// В SQLite LOWER и LIKE регистронезависимы только для ASCII,
	// поэтому кириллица сравнивается уже в Go.
	foldInGo := s.db.Dialector.Name() == "sqlite" && !isASCII(substr)

	q := s.db.WithContext(ctx)
	if foldInGo {
		q = q.Where(column + " IS NOT NULL")
	} else {
		q = q.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", likePattern(substr))
	}
	if upcomingOnly {
		q = q.Where("event_date >= ?", s.Today())
	}

	var posters []models.Poster
	err := q.Order("event_date IS NULL").Order("event_date").Order("id").Find(&posters).Error
	if err != nil {
		return nil, fmt.Errorf("query by %s: %w", column, err)
	}

	if foldInGo {
		posters = filterContains(posters, column, substr)
	}
	return posters, nil
}

func filterContains(posters []models.Poster, column, substr string) []models.Poster {
	needle := strings.ToLower(substr)
	out := posters[:0]
	for _, p := range posters {
		if v := columnValue(&p, column); v != nil && strings.Contains(strings.ToLower(*v), needle) {
			out = append(out, p)
		}
	}
	return out
}

func columnValue(p *models.Poster, column string) *string {
	switch column {
	case columnLocation:
		return p.Location
	case columnVenue:
		return p.Venue
	case columnDepartment:
		return p.HostedDepartment
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Today возвращает текущую дату сервера в том же виде, в котором хранятся даты мероприятий.
func (s *EventStore) Today() datatypes.Date {
	return DateOf(s.now())
}

// DateOf отбрасывает время суток и часовой пояс: даты хранятся как полночь UTC.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(substr string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(substr)) + "%"
}
