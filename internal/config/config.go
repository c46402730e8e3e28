package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort    string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseDSN string        `env:"DATABASE_DSN" envDefault:"host=localhost user=postgres password=postgres dbname=restaurant port=5432 sslmode=disable"`
	JWTSecret   string        `env:"JWT_SECRET"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"` // Token ve cookie ömrü
	CORSOrigins string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
}

func Load() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[FATAL] Config okunamadı: %v", err)
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.JWTTTL <= 0 {
		log.Fatal("[FATAL] JWT_TTL pozitif bir süre olmalıdır (örn. 24h).")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}
