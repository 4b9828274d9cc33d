package main

import (
	"path/filepath"

	"github.com/hadiajavedd/SaySoPrototype/internal/config"
	"github.com/hadiajavedd/SaySoPrototype/internal/database"
	"github.com/hadiajavedd/SaySoPrototype/internal/logging"
	"github.com/hadiajavedd/SaySoPrototype/internal/router"

	"go.uber.org/zap"
)

func main() {
	projectRoot := "."

	// Initialize Logger
	log, err := logging.Init(projectRoot)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Load configuration
	if err := config.Init(projectRoot, log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Setup router
	r := router.Setup(log, filepath.Join(projectRoot, "templates", "*.html"))

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
