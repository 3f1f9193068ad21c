package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/db"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/handler"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/repository"
)

func main() {

	godotenv.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	reportRepo := repository.NewReportRepository(db.DB)
	gapRepo := repository.NewGapRepository(db.DB)
	reportHandler := handler.NewReportHandler(reportRepo, gapRepo)

	briefRepo := repository.NewBriefRepository(db.DB)
	briefHandler := handler.NewBriefHandler(briefRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/reports/latest", reportHandler.GetLatestReport)
	r.GET("/reports/:run_id", reportHandler.GetReport)
	r.GET("/reports", reportHandler.GetReports)
	r.GET("/gaps", reportHandler.GetGaps)
	r.GET("/briefs/:id", briefHandler.GetBrief)
	r.GET("/briefs", briefHandler.GetBriefs)
	r.GET("/health", reportHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
