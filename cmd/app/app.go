package main

import (
	"os"

	"github.com/iggarsaudev/Api-IgLusShop/internal/app"
	config "github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

//	@title			IgLu's Shop API
//	@version		1.0
//	@description	Административный API интернет-магазина: каталог, аутлет, поставщики, отзывы, пользователи.

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
