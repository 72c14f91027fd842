package main

import (
	"log"

	"brewbuddy/internal/config"
	"brewbuddy/internal/db"
	"brewbuddy/internal/handler"
	"brewbuddy/internal/repository"
	"brewbuddy/internal/router"
	"brewbuddy/internal/service"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	beanRepo := repository.NewBeanRepository(database)
	equipmentRepo := repository.NewEquipmentRepository(database)
	brewprintRepo := repository.NewBrewprintRepository(database)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	beanService := service.NewBeanService(beanRepo)
	equipmentService := service.NewEquipmentService(equipmentRepo)
	brewprintService := service.NewBrewprintService(brewprintRepo)

	authHandler := handler.NewAuthHandler(authService)
	beanHandler := handler.NewBeanHandler(beanService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	brewprintHandler := handler.NewBrewprintHandler(brewprintService)

	engine := router.New(authService, authHandler, beanHandler, equipmentHandler, brewprintHandler, cfg.CORSOrigins)
	log.Printf("brewbuddy listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
