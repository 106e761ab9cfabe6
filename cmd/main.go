package main

import (
	"log"

	"poster_events/internal/cli"
)

var version = "dev"

// @Title						Мероприятия с афиш
// @Description				Распознавание афиш мероприятий и поиск по сохранённым мероприятиям
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if err := cli.Run(version); err != nil {
		log.Fatal(err)
	}
}
