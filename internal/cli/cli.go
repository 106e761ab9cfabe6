// Package cli содержит команды poster-events: serve, analyze, migrate и token.
package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"

	"poster_events/internal/config"
)

type commands struct {
	Serve   *ServeCommand
	Analyze *AnalyzeCommand
	Migrate *MigrateCommand
	Token   *TokenCommand
}

func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "poster-events"
	parser.LongDescription = "Распознавание афиш мероприятий и поиск по сохранённым мероприятиям."

	cmds := &commands{
		Serve:   &ServeCommand{globals: &globals, version: version},
		Analyze: &AnalyzeCommand{globals: &globals},
		Migrate: &MigrateCommand{globals: &globals},
		Token:   &TokenCommand{globals: &globals},
	}

	parser.AddCommand("serve", "Запустить HTTP-сервис", "Запустить HTTP API, WebSocket и фоновые задачи.", cmds.Serve)
	parser.AddCommand("analyze", "Обработать файл афиши", "Распознать локальный файл афиши, сохранить мероприятие и вывести его в JSON.", cmds.Analyze)
	parser.AddCommand("migrate", "Применить схему базы данных", "Создать или обновить таблицу posters и выйти.", cmds.Migrate)
	parser.AddCommand("token", "Выпустить токен на загрузку", "Выпустить JWT для POST /analyze-poster, подписанный JWT_UPLOAD_SECRET.", cmds.Token)

	return parser, &globals, cmds
}

// Run разбирает os.Args и выполняет выбранную команду.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs разбирает args (или os.Args, если nil) и выполняет выбранную команду.
func RunWithArgs(version string, args []string) error {
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("poster-events %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	path := ""
	if globals != nil {
		path = globals.Config
	}
	return config.Load(path)
}
