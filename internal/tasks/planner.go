package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// UpcomingCounter считает предстоящие мероприятия.
type UpcomingCounter interface {
	CountUpcoming(ctx context.Context) (int64, error)
}

// UpcomingGauge принимает текущее число предстоящих мероприятий.
type UpcomingGauge interface {
	SetUpcoming(n int64)
}

const refreshTimeout = 30 * time.Second

// RefreshUpcoming пересчитывает число предстоящих мероприятий и обновляет метрику.
// Дата «сегодня» сдвигается в полночь, поэтому значение нужно обновлять по расписанию, а не только при загрузке.
func RefreshUpcoming(ctx context.Context, counter UpcomingCounter, gauge UpcomingGauge) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	n, err := counter.CountUpcoming(ctx)
	if err != nil {
		log.Println("Ошибка при подсчёте предстоящих мероприятий:", err)
		return
	}
	gauge.SetUpcoming(n)
	log.Printf("Предстоящих мероприятий: %d\n", n)
}

// InitScheduler инициализирует планировщик cron-задач и сразу выполняет первый пересчёт.
// Пустое расписание отключает задачу.
func InitScheduler(spec string, counter UpcomingCounter, gauge UpcomingGauge) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	RefreshUpcoming(context.Background(), counter, gauge)

	if spec != "" {
		_, err := c.AddFunc(spec, func() {
			RefreshUpcoming(context.Background(), counter, gauge)
		})
		if err != nil {
			return nil, fmt.Errorf("schedule upcoming refresh %q: %w", spec, err)
		}
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c, nil
}
