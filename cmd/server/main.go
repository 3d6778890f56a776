package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"pet-care-advisor/internal/assessment"
	"pet-care-advisor/internal/config"
	"pet-care-advisor/internal/knowledge"
	"pet-care-advisor/internal/platform/webhook"
	"pet-care-advisor/internal/report"
)

func main() {
	cfg := config.Load()

	// 1. Knowledge base. A malformed base is fatal: the server must never
	// answer assessments against partial knowledge.
	store, err := knowledge.NewStore(cfg.KnowledgePath)
	if err != nil {
		log.Fatalf("Could not load knowledge base: %v", err)
	}
	base := store.Snapshot()
	log.Printf("Knowledge base loaded: %d symptoms, %d conditions.",
		len(base.Symptoms()), len(base.Conditions()))

	// 2. Database (optional). Assessments still run without history.
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		for i := 0; i < 10; i++ {
			db, err = sql.Open("postgres", cfg.DatabaseURL)
			if err == nil {
				err = db.Ping()
			}
			if err == nil {
				break
			}
			fmt.Printf("Waiting for DB... (%d/10)\n", i+1)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			log.Printf("Could not connect to DB: %v. Continuing without assessment history.", err)
			db = nil
		} else {
			log.Println("Connected to Database.")

			m, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseURL)
			if err != nil {
				log.Printf("Migration init failed: %v", err)
			} else {
				if err := m.Up(); err != nil && err != migrate.ErrNoChange {
					log.Printf("Migration up failed: %v", err)
				} else {
					log.Println("Migrations applied successfully!")
				}
			}
		}
	} else {
		log.Println("DATABASE_URL is not set. Continuing without assessment history.")
	}

	// 3. Services
	repo := assessment.NewRepository(db)

	var alerts assessment.AlertSender
	if cfg.AlertWebhookURL != "" {
		alerts = webhook.NewClient(cfg.AlertWebhookURL)
		log.Println("Emergency alert webhook enabled.")
	}

	svc := assessment.NewService(store, repo, alerts, log.Printf)
	reportSvc := report.NewService()
	handler := assessment.NewHandler(svc, reportSvc)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		assessment.RegisterRoutes(r, handler)
	})

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
