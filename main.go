package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangamops/mela-backend/internal/assistant"
	"github.com/sangamops/mela-backend/internal/auth"
	"github.com/sangamops/mela-backend/internal/dashboard"
	"github.com/sangamops/mela-backend/internal/db"
	"github.com/sangamops/mela-backend/internal/middleware"
	"github.com/sangamops/mela-backend/internal/store"
	"github.com/sangamops/mela-backend/internal/ws"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	// LISTEN/NOTIFY needs a direct connection: poolers don't forward NOTIFY.
	directURL := os.Getenv("DATABASE_DIRECT_URL")
	if directURL == "" {
		log.Fatal("DATABASE_DIRECT_URL is empty")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	dashboard.Init()

	listener := store.NewListener(directURL)
	st := store.NewPostgres(db.DB, listener)

	recon := dashboard.NewReconciler(st, 30*time.Second)
	if err := recon.Start(); err != nil {
		log.Fatal("Failed to start reconciler: ", err)
	}
	commands := dashboard.NewCommands(st)

	hub := ws.NewHub()
	views, _ := recon.SubscribeViews()
	go func() {
		for view := range views {
			hub.Broadcast(view)
		}
	}()

	matcher := assistant.New()
	if path := os.Getenv("ASSISTANT_TEMPLATES"); path != "" {
		if err := matcher.LoadTemplates(path); err != nil {
			log.Fatal("Failed to load assistant templates: ", err)
		}
	}

	sessionFetcher := auth.SessionInfo{}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/dashboard", dashboard.SetupRoutes(dashboard.NewHandlers(recon, commands), sessionFetcher, hub))
	r.Mount("/assistant", assistant.SetupRoutes(assistant.NewHandlers(matcher)))

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
