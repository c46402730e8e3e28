package main

import (
	"log"

	"restaurant-management-backend/internal/config"
	"restaurant-management-backend/internal/database"
	"restaurant-management-backend/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := server.New(cfg)

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
