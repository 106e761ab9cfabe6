package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"poster_events/internal/auth"
)

// Execute печатает подписанный токен на загрузку афиш.
func (c *TokenCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if cfg.Auth.UploadSecret == "" {
		return errors.New("JWT_UPLOAD_SECRET is not set")
	}

	token, err := auth.GenerateToken(c.Subject, c.TTL, []byte(cfg.Auth.UploadSecret))
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	var out io.Writer = os.Stdout
	if c.out != nil {
		out = c.out
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
