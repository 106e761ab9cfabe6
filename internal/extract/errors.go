package extract

import (
	"errors"
	"fmt"
)

// Ошибки конвейера. Обработчики HTTP сопоставляют их с кодами ответа через errors.Is.
var (
	ErrInvalidImage           = errors.New("invalid image")
	ErrModelUnavailable       = errors.New("vision model request failed")
	ErrModelResponseMalformed = errors.New("model response is not valid JSON")
	ErrDateTimeInvalid        = errors.New("invalid date/time in model response")
	ErrStore                  = errors.New("store poster")
)

// ModelResponseError хранит сырой текст модели, который не удалось разобрать как JSON.
type ModelResponseError struct {
	Raw string
	Err error
}

func (e *ModelResponseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrModelResponseMalformed, e.Err)
}

func (e *ModelResponseError) Is(target error) bool {
	return target == ErrModelResponseMalformed
}

func (e *ModelResponseError) Unwrap() error {
	return e.Err
}

// DateTimeError описывает поле event_date или event_time, не прошедшее проверку.
type DateTimeError struct {
	Field string
	Value string
	Err   error
}

func (e *DateTimeError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *DateTimeError) Is(target error) bool {
	return target == ErrDateTimeInvalid
}

func (e *DateTimeError) Unwrap() error {
	return e.Err
}
