package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/auditrain/auditrain-backend/internal/config"
	"github.com/auditrain/auditrain-backend/internal/database"
	"github.com/auditrain/auditrain-backend/internal/logger"
	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/repository"
	"github.com/auditrain/auditrain-backend/internal/service"
)

// seedQuestion is one entry in the question bank file. Type accepts both the
// canonical labels and the legacy "Combobox"/"Checkbox" ones.
type seedQuestion struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Score    int      `json:"score"`
	Answers  []string `json:"answers"`
	Correct  []int    `json:"correct"`
}

func main() {
	var bankFile string
	flag.StringVar(&bankFile, "file", "assets/question-bank.json", "Path to the question bank JSON file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	questionService := service.NewQuestionService(questionRepo)

	raw, err := os.ReadFile(bankFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", bankFile).Msg("Failed to read question bank")
	}

	var bank []seedQuestion
	if err := json.Unmarshal(raw, &bank); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse question bank")
	}

	fmt.Printf("=== Seeding %d Questions ===\n", len(bank))

	successCount := 0
	for i, sq := range bank {
		req := &model.SaveQuestionRequest{
			Question: sq.Question,
			Type:     string(model.NormalizeQuestionType(sq.Type)),
			Score:    sq.Score,
			Answers:  sq.Answers,
			Correct:  sq.Correct,
		}

		if _, err := questionService.Create(ctx, req); err != nil {
			fmt.Printf("Error creating question %d (%q): %v\n", i+1, sq.Question, err)
			continue
		}
		successCount++
		if successCount%10 == 0 {
			fmt.Printf("Created %d questions...\n", successCount)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d questions.\n", successCount, len(bank))
}
