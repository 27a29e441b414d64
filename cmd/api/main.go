package main

import (
	"os"

	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/server"
)

// @title UniSchedule API
// @version 1.0
// @description API for university lecture scheduling: faculties, classrooms, groups, teachers, lectures and day schedules
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// NewServer orchestrates config, logger, database, dependencies and router setup
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
