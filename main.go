package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/civic-report-api/api/handlers"
	"github.com/linesmerrill/civic-report-api/api/scheduler"
	"github.com/linesmerrill/civic-report-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	//initialize database and router
	if err := a.Initialize(); err != nil {
		zap.S().Fatalw("failed to initialize", "error", err)
	}

	s := scheduler.NewScheduler(a.Limiter, a.Metrics, a.Reports())
	if err := s.Start(); err != nil {
		zap.S().Fatalw("failed to start scheduler", "error", err)
	}
	defer s.Stop()

	zap.S().Infow("civic-report-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
		"environment", a.Config.Environment,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
