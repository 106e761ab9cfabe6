package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"poster_events/internal/extract"
	"poster_events/internal/gemini"
	"poster_events/internal/response"
	"poster_events/internal/storage"
)

// Execute распознаёт файл афиши и печатает сохранённое мероприятие.
func (c *AnalyzeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if err := cfg.Validate(true); err != nil {
		return err
	}

	ctx := context.Background()

	db, err := storage.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer storage.Close(db)

	model, err := gemini.New(ctx, cfg.Model.APIKey, cfg.Model.Name)
	if err != nil {
		return err
	}

	return c.executeWith(ctx, db, model, extract.WithModelTimeout(cfg.Model.Timeout))
}

func (c *AnalyzeCommand) executeWith(ctx context.Context, db *gorm.DB, model extract.VisionModel, opts ...extract.Option) error {
	img, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read poster: %w", err)
	}

	if err := storage.Migrate(db); err != nil {
		return err
	}

	pipeline := extract.NewPipeline(model, storage.NewEventStore(db), opts...)
	poster, err := pipeline.Extract(ctx, img)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.output())
	enc.SetIndent("", "  ")
	return enc.Encode(response.NewEvent(poster))
}

func (c *AnalyzeCommand) output() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}
