// Package extract превращает загруженную афишу в сохранённое мероприятие:
// изображение -> модель -> JSON -> нормализация даты и времени -> база.
package extract

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"time"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"poster_events/internal/models"
)

//go:generate mockgen -destination=mocks/mock_extract.go -package=mocks poster_events/internal/extract VisionModel

// VisionModel — внешняя мультимодальная модель: инструкция + изображение -> текст.
type VisionModel interface {
	Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Inserter сохраняет мероприятие и возвращает его с присвоенным ID.
type Inserter interface {
	Insert(ctx context.Context, p *models.Poster) (*models.Poster, error)
}

// ResponseCache хранит сырые ответы модели по хэшу изображения.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Notifier получает каждое новое мероприятие после сохранения.
type Notifier interface {
	PublishPoster(p *models.Poster)
}

// Observer принимает метрики конвейера.
type Observer interface {
	ObserveExtraction(result string)
	ObserveModelLatency(d time.Duration)
}

// Pipeline выполняет извлечение мероприятия из афиши.
type Pipeline struct {
	model    VisionModel
	store    Inserter
	cache    ResponseCache
	notifier Notifier
	observer Observer
	timeout  time.Duration
}

// Option настраивает Pipeline.
type Option func(*Pipeline)

func WithCache(c ResponseCache) Option {
	return func(p *Pipeline) { p.cache = c }
}

func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithModelTimeout ограничивает время ответа модели. 0 — без ограничения.
func WithModelTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

func NewPipeline(model VisionModel, store Inserter, opts ...Option) *Pipeline {
	p := &Pipeline{model: model, store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract обрабатывает изображение афиши и сохраняет мероприятие.
// Частичных результатов нет: при любой ошибке в базу ничего не записывается.
func (p *Pipeline) Extract(ctx context.Context, img []byte) (*models.Poster, error) {
	mimeType, err := DetectImage(img)
	if err != nil {
		p.observe("invalid_image")
		return nil, err
	}

	key := imageKey(img)
	raw, cached := p.cached(ctx, key)
	if !cached {
		raw, err = p.generate(ctx, img, mimeType)
		if err != nil {
			p.observe("model_error")
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
	}

	fields, err := ParseResponse(raw)
	if err != nil {
		p.observe("malformed_response")
		return nil, err
	}

	poster, err := fields.Normalize()
	if err != nil {
		p.observe("invalid_datetime")
		return nil, err
	}

	if !cached && p.cache != nil {
		if err := p.cache.Set(ctx, key, raw); err != nil {
			log.Printf("Ошибка записи ответа модели в кэш: %v", err)
		}
	}

	stored, err := p.store.Insert(ctx, poster)
	if err != nil {
		p.observe("store_error")
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	p.observe("ok")
	if p.notifier != nil {
		p.notifier.PublishPoster(stored)
	}
	return stored, nil
}

// DetectImage проверяет, что данные декодируются как изображение, и возвращает их MIME-тип.
func DetectImage(img []byte) (string, error) {
	if len(img) == 0 {
		return "", fmt.Errorf("%w: empty upload", ErrInvalidImage)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(img)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return mimetype.Detect(img).String(), nil
}

func (p *Pipeline) cached(ctx context.Context, key string) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	raw, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		log.Printf("Ошибка чтения кэша ответов модели: %v", err)
		return "", false
	}
	return raw, ok
}

func (p *Pipeline) generate(ctx context.Context, img []byte, mimeType string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := p.model.Generate(ctx, Prompt, img, mimeType)
	if p.observer != nil {
		p.observer.ObserveModelLatency(time.Since(start))
	}
	return raw, err
}

func (p *Pipeline) observe(result string) {
	if p.observer != nil {
		p.observer.ObserveExtraction(result)
	}
}

func imageKey(img []byte) string {
	sum := sha256.Sum256(img)
	return hex.EncodeToString(sum[:])
}
