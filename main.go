package main

import (
	"fmt"
	"log"

	"storefront/configs"
	"storefront/middlewares"
	"storefront/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := configs.LoadConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}

	// DB
	db, err := configs.ConnectDB(cfg.DBSource)
	if err != nil {
		log.Fatalf("connect database failed: %v", err)
	}

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	if err := configs.SeedCatalog(db); err != nil {
		log.Fatalf("seed catalog failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
