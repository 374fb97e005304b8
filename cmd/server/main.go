package main

import (
	"log"
	"net/http"
	"os"

	"pickem-live/internal/config"
	"pickem-live/internal/db"
	"pickem-live/internal/game"
	"pickem-live/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	hub := server.NewHub()
	engine := game.NewService(conn, hub, cfg)
	srv := server.New(engine, hub, cfg)

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}
	log.Printf("pickem-live server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
