package cli

import (
	"log"

	"poster_events/internal/storage"
)

// Execute применяет схему и выходит.
func (c *MigrateCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if err := cfg.Validate(false); err != nil {
		return err
	}

	db, err := storage.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer storage.Close(db)

	if err := storage.Migrate(db); err != nil {
		return err
	}
	log.Println("Миграция выполнена успешно")
	return nil
}
