package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"vixip/internal/config"
	"vixip/internal/domain"
	"vixip/internal/llm"
	"vixip/internal/port"
	"vixip/internal/pptx"
	"vixip/internal/slidetext"
)

// TransformService runs one full rewrite pass: prompt the model with the
// deck snapshot, collect the streamed edit payload, and patch a freshly
// opened copy of the stored deck.
type TransformService interface {
	Transform(ctx context.Context, deckID uuid.UUID, instruction string) (*domain.TransformResult, error)
}

type transformService struct {
	deckRepo   port.DeckRepository
	storage    port.ObjectStorage
	generator  port.TextGenerator
	storageCfg *config.StorageConfig
	separator  string
}

// NewTransformService creates a new TransformService implementation.
func NewTransformService(
	deckRepo port.DeckRepository,
	storage port.ObjectStorage,
	generator port.TextGenerator,
	storageCfg *config.StorageConfig,
	transformCfg *config.TransformConfig,
) TransformService {
	return &transformService{
		deckRepo:   deckRepo,
		storage:    storage,
		generator:  generator,
		storageCfg: storageCfg,
		separator:  transformCfg.Separator,
	}
}

func (s *transformService) Transform(ctx context.Context, deckID uuid.UUID, instruction string) (*domain.TransformResult, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, domain.ErrEmptyInstruction
	}

	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}

	fragments, err := s.generator.Stream(ctx, port.GenerateInput{
		SystemPrompt: llm.BuildTransformSystemPrompt(s.separator),
		UserPrompt:   llm.BuildTransformUserPrompt(instruction, deck.Snapshot),
	})
	if err != nil {
		return nil, err
	}

	// Drain the producer-paced stream through the collector. A backend
	// failure mid-stream fails this turn only; whatever accumulated is
	// discarded with the collector.
	collector := slidetext.NewCollector(s.separator)
	for f := range fragments {
		if f.Err != nil {
			return nil, f.Err
		}
		if collector.Feed(f.Text) {
			log.Printf("transformService.Transform: deck %s separator seen, collecting payload", deckID)
		}
	}

	payload, outcome, err := collector.Finalize()
	if err != nil {
		return nil, err
	}
	if outcome == domain.OutcomeRecovered {
		log.Printf("transformService.Transform: deck %s model ignored the separator, payload recovered from reasoning text", deckID)
	}

	edits := slidetext.ParseEdits(payload)
	if len(edits) == 0 {
		return nil, domain.ErrNoEditsProduced
	}

	// Reopen the deck from its stored source rather than reusing the
	// extraction-time document. Extraction and patching always operate on
	// two independently opened instances.
	source, err := s.storage.Download(ctx, s.storageCfg.Bucket, deck.SourceKey)
	if err != nil {
		return nil, fmt.Errorf("downloading source: %w", err)
	}
	doc, err := pptx.Open(source)
	if err != nil {
		return nil, err
	}

	applied := slidetext.Apply(doc, edits)

	result, err := doc.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serializing patched deck: %w", err)
	}

	resultKey := fmt.Sprintf("decks/%s/enhanced.pptx", deckID)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.storageCfg.Bucket,
		Key:         resultKey,
		Body:        bytes.NewReader(result),
		ContentType: pptxContentType,
		Size:        int64(len(result)),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	deck.ResultKey = resultKey
	deck.Status = domain.DeckStatusTransformed
	if err := s.deckRepo.Update(ctx, deck); err != nil {
		return nil, fmt.Errorf("updating deck session: %w", err)
	}

	log.Printf("transformService.Transform: deck %s outcome=%s edits=%d applied=%d",
		deckID, outcome, len(edits), applied)

	return &domain.TransformResult{
		DeckID:         deckID,
		Outcome:        outcome,
		Recovered:      outcome == domain.OutcomeRecovered,
		EditsRequested: len(edits),
		EditsApplied:   applied,
	}, nil
}
