package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inmoscope/server/config"
	"inmoscope/server/internal/api"
	"inmoscope/server/internal/mapview"
	"inmoscope/server/internal/upstream"
	"inmoscope/server/internal/view"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	client := upstream.NewClient(
		cfg.Upstream.BaseURL,
		time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second,
		logger,
	)

	city := config.GetCityByName(cfg.Map.DefaultCity)
	logger.Infof("Using %s as the default map center", city.Name)
	synthesizer := mapview.NewSynthesizer(city.Center[0], city.Center[1], city.ZoomLevel)

	viewService := view.NewService(client, synthesizer, logger)
	handler := api.NewHandler(viewService, client, cfg, logger)

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
