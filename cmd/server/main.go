package main

import (
	"fmt"
	"log"

	"vixip/internal/config"
	"vixip/internal/handler"
	"vixip/internal/llm/ollama"
	"vixip/internal/port"
	deckmemory "vixip/internal/repository/memory"
	"vixip/internal/router"
	"vixip/internal/service"
	objmemory "vixip/internal/storage/memory"
	s3storage "vixip/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize storage
	var storage port.ObjectStorage
	switch cfg.Storage.Backend {
	case "s3":
		storage, err = s3storage.NewS3Client(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	case "memory":
		storage = objmemory.NewMemoryStore()
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	// Initialize generation backend and repositories
	generator := ollama.NewClient(&cfg.LLM)
	deckRepo := deckmemory.NewDeckRepo()

	// Initialize services
	deckSvc := service.NewDeckService(deckRepo, storage, &cfg.Storage)
	chatSvc := service.NewChatService(deckRepo, generator)
	transformSvc := service.NewTransformService(deckRepo, storage, generator, &cfg.Storage, &cfg.Transform)

	// Initialize handlers
	deckH := handler.NewDeckHandler(deckSvc, chatSvc, transformSvc)
	healthH := handler.NewHealthHandler(generator)

	// Setup router
	r := router.Setup(cfg, deckH, healthH)

	log.Printf("Server starting on %s (model %s at %s, storage %s)",
		cfg.Server.Port, cfg.LLM.Model, cfg.LLM.BaseURL, cfg.Storage.Backend)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
