package cli

import (
	"io"
	"time"
)

// GlobalFlags — флаги, общие для всех команд.
type GlobalFlags struct {
	Config  string `long:"config" description:"Путь к YAML-файлу конфигурации (иначе CONFIG_PATH)"`
	Version bool   `long:"version" description:"Показать версию и выйти"`
}

// ServeCommand — запуск HTTP-сервиса.
type ServeCommand struct {
	Addr string `long:"addr" description:"Адрес HTTP-сервера, переопределяет HTTP_ADDR"`

	globals *GlobalFlags
	version string
}

// AnalyzeCommand — обработка локального файла афиши без HTTP.
type AnalyzeCommand struct {
	File string `long:"file" short:"f" description:"Путь к изображению афиши" required:"true"`

	globals *GlobalFlags
	out     io.Writer
}

// MigrateCommand — применение схемы базы данных.
type MigrateCommand struct {
	globals *GlobalFlags
}

// TokenCommand — выпуск токена на загрузку афиш.
type TokenCommand struct {
	Subject string        `long:"subject" description:"Кому выдаётся токен" default:"uploader"`
	TTL     time.Duration `long:"ttl" description:"Срок действия токена" default:"24h"`

	globals *GlobalFlags
	out     io.Writer
}
