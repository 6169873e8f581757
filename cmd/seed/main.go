package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/sangamops/mela-backend/internal/auth"
	"github.com/sangamops/mela-backend/internal/dashboard"
	"github.com/sangamops/mela-backend/internal/db"
	"github.com/sangamops/mela-backend/internal/seeds"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	auth.Init()
	dashboard.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
