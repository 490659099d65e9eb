package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/stilevo/stilevo-api/internal/cache"
	"github.com/stilevo/stilevo-api/internal/config"
	dbpkg "github.com/stilevo/stilevo-api/internal/db"
	"github.com/stilevo/stilevo-api/internal/middleware"
	"github.com/stilevo/stilevo-api/internal/reminders"
	"github.com/stilevo/stilevo-api/internal/routes"
	"github.com/stilevo/stilevo-api/internal/state"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

func main() {
	seedDemo := flag.Bool("seed-demo", false, "seed the demo roster and ledger")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := cache.NewClient(cfg)

	st := state.New()
	if *seedDemo {
		st.SeedDemo(timezone.Now())
		log.Println("demo data seeded")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	stopSubscription := routes.RegisterRoutes(r, db, rdb, st, cfg)
	defer stopSubscription()

	reminderDispatcher := reminders.NewDispatcher(st, reminders.LogNotifier{})
	reminderDispatcher.Start()
	defer reminderDispatcher.Stop()

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
