// Package timenorm приводит время события из ответа модели к каноническому виду HH:MM:SS.
package timenorm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ErrUnparseableTime возвращается, когда ни один из способов разбора не подошёл.
var ErrUnparseableTime = errors.New("unparseable time")

// UnparseableTimeError хранит исходную строку, которую не удалось разобрать.
type UnparseableTimeError struct {
	Input string
}

func (e *UnparseableTimeError) Error() string {
	return fmt.Sprintf("could not parse time string: %s", e.Input)
}

func (e *UnparseableTimeError) Is(target error) bool {
	return target == ErrUnparseableTime
}

// Слова удаляются простой заменой подстроки, в том числе внутри других слов.
var noiseWords = []string{"onwards", "onward", "starting", "from", "at"}

// Layouts перечисляет форматы в порядке приоритета: побеждает первый подошедший.
// Минуты и секунды без ведущего нуля: "5:3 PM" читается как 17:03.
var Layouts = []string{
	"3:4 PM",   // 5:30 PM
	"3:4PM",    // 5:30PM
	"3:4",      // 5:30
	"15:4",     // 17:30
	"3 PM",     // 5 PM
	"15:4:5",   // 17:30:00
	"3:4:5 PM", // 5:30:00 PM
}

var fallbackPattern = regexp.MustCompile(`(?i)^(\d{1,2}):?(\d{2})?\s*(am|pm)?`)

// Clean убирает лишние слова и отделяет AM/PM пробелом.
func Clean(raw string) string {
	s := strings.ToLower(raw)
	for _, word := range noiseWords {
		s = strings.TrimSpace(strings.ReplaceAll(s, word, ""))
	}

	s = strings.ReplaceAll(s, "pm", " PM")
	s = strings.ReplaceAll(s, "am", " AM")

	return strings.TrimSpace(s)
}

// Normalize разбирает строку времени в свободной форме.
// Сначала пробуются Layouts по порядку, затем регулярное выражение.
func Normalize(raw string) (datatypes.Time, error) {
	cleaned := Clean(raw)

	if t, _, ok := parseStructured(cleaned); ok {
		return toTime(t), nil
	}

	if t, ok := parseLoose(cleaned); ok {
		return toTime(t), nil
	}

	return 0, &UnparseableTimeError{Input: raw}
}

// parseStructured возвращает также формат, по которому прошёл разбор.
func parseStructured(s string) (time.Time, string, bool) {
	for _, layout := range Layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}

func parseLoose(s string) (time.Time, bool) {
	m := fallbackPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, false
		}
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	t, err := time.Parse("15:04", fmt.Sprintf("%02d:%02d", hour, minute))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func toTime(t time.Time) datatypes.Time {
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
}
