package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"smarthire/config"
	"smarthire/infrastructure"
	"smarthire/interfaces"
	"smarthire/usecase"
)

func main() {
	// Load .env
	_ = godotenv.Load()

	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect DB
	db := infrastructure.NewMySQLConnection(cfg.DBDSN)
	jobs := infrastructure.NewJobStore(db)
	candidates := infrastructure.NewCandidateStore(db)

	// Analyzer: live Gemini when a real credential is configured, mock
	// otherwise. The fallback wrapper degrades live failures to mock.
	mock := infrastructure.NewMockAnalyzer()
	var live usecase.Analyzer
	if cfg.AnalyzerMode == config.ModeLive {
		live = infrastructure.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, log)
		log.Infof("✅ Using Gemini live analysis (%s)", cfg.GeminiModel)
	} else {
		log.Warn("⚠️  Using mock analysis mode (no valid GEMINI_API_KEY)")
	}
	analyzer := usecase.NewFallbackAnalyzer(live, mock, cfg.AnalysisTimeout, log)

	// Candidate-scored events are optional; submissions work without a broker.
	var publisher usecase.Publisher
	if cfg.RabbitMQURL != "" {
		p, err := infrastructure.NewEventPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.WithError(err).Warn("candidate-scored events disabled")
		} else {
			defer p.Close()
			publisher = p
			log.Info("✅ Connected to RabbitMQ and declared queue")
		}
	}

	pipeline := usecase.NewPipeline(jobs, candidates, infrastructure.NewPDFExtractor(), analyzer, publisher, log)

	// Setup Gin router
	router := gin.Default()
	interfaces.NewHTTPHandler(router, pipeline, jobs, candidates)

	log.Infof("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
