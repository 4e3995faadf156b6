package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"vixip/internal/config"
	"vixip/internal/domain"
	"vixip/internal/port"
	"vixip/internal/pptx"
	"vixip/internal/slidetext"
	"vixip/internal/xlsxexport"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// zipMagic is the local-file-header signature every pptx archive starts with.
var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DeckUploadInput is the DTO for deck upload requests.
type DeckUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// DeckService defines the deck session contract.
type DeckService interface {
	Upload(ctx context.Context, input DeckUploadInput) (*domain.Deck, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	List(ctx context.Context) ([]domain.Deck, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExtractedText(ctx context.Context, id uuid.UUID) (string, error)
	DownloadResult(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	ExportWorkbook(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type deckService struct {
	deckRepo port.DeckRepository
	storage  port.ObjectStorage
	cfg      *config.StorageConfig
}

// NewDeckService creates a new DeckService implementation.
func NewDeckService(deckRepo port.DeckRepository, storage port.ObjectStorage, cfg *config.StorageConfig) DeckService {
	return &deckService{deckRepo: deckRepo, storage: storage, cfg: cfg}
}

// Upload validates and stores a deck, opens it once for extraction, and
// creates the session holding the text snapshot used by chat and transform.
func (s *deckService) Upload(ctx context.Context, input DeckUploadInput) (*domain.Deck, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if ext != "pptx" {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if !bytes.HasPrefix(data, zipMagic) {
		return nil, domain.ErrUnsupportedFileType
	}

	doc, err := pptx.Open(data)
	if err != nil {
		return nil, err
	}
	lines := slidetext.Lines(doc)
	snapshot := slidetext.Extract(doc)

	deckID := uuid.New()
	sourceKey := fmt.Sprintf("decks/%s/source.pptx", deckID)

	log.Printf("deckService.Upload: storing deck %s (%s, %d bytes, %d slides, %d lines)",
		deckID, input.Header.Filename, len(data), len(doc.Slides), len(lines))

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         sourceKey,
		Body:        bytes.NewReader(data),
		ContentType: pptxContentType,
		Size:        int64(len(data)),
	}); err != nil {
		log.Printf("deckService.Upload: storage upload failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	deck := &domain.Deck{
		ID:           deckID,
		OriginalName: input.Header.Filename,
		FileSize:     int64(len(data)),
		SourceKey:    sourceKey,
		Snapshot:     snapshot,
		SlideCount:   len(doc.Slides),
		LineCount:    len(lines),
		Status:       domain.DeckStatusUploaded,
		UploadedAt:   time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.deckRepo.Create(ctx, deck); err != nil {
		return nil, fmt.Errorf("creating deck session: %w", err)
	}
	return deck, nil
}

func (s *deckService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	return s.deckRepo.GetByID(ctx, id)
}

func (s *deckService) List(ctx context.Context) ([]domain.Deck, error) {
	return s.deckRepo.List(ctx)
}

// Delete removes the session and its stored objects.
func (s *deckService) Delete(ctx context.Context, id uuid.UUID) error {
	deck, err := s.deckRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, deck.SourceKey); err != nil {
		log.Printf("deckService.Delete: deleting source object for deck %s: %v", id, err)
	}
	if deck.ResultKey != "" {
		if err := s.storage.Delete(ctx, s.cfg.Bucket, deck.ResultKey); err != nil {
			log.Printf("deckService.Delete: deleting result object for deck %s: %v", id, err)
		}
	}
	return s.deckRepo.Delete(ctx, id)
}

// ExtractedText returns the snapshot taken at upload time. It is immutable
// for the lifetime of the session; transforms never re-extract.
func (s *deckService) ExtractedText(ctx context.Context, id uuid.UUID) (string, error) {
	deck, err := s.deckRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return deck.Snapshot, nil
}

// DownloadResult returns the transformed deck bytes and a download filename.
func (s *deckService) DownloadResult(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	deck, err := s.deckRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if deck.ResultKey == "" {
		return nil, "", domain.ErrNoTransformResult
	}
	data, err := s.storage.Download(ctx, s.cfg.Bucket, deck.ResultKey)
	if err != nil {
		return nil, "", fmt.Errorf("downloading result: %w", err)
	}
	base := strings.TrimSuffix(deck.OriginalName, filepath.Ext(deck.OriginalName))
	return data, base + "_enhanced.pptx", nil
}

// ExportWorkbook builds an xlsx review sheet of the deck's addressable
// lines, re-reading the stored source so the export reflects exactly what
// the patcher would see.
func (s *deckService) ExportWorkbook(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	deck, err := s.deckRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := s.storage.Download(ctx, s.cfg.Bucket, deck.SourceKey)
	if err != nil {
		return nil, "", fmt.Errorf("downloading source: %w", err)
	}
	doc, err := pptx.Open(data)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, slidetext.Lines(doc)); err != nil {
		return nil, "", fmt.Errorf("building workbook: %w", err)
	}
	return buf.Bytes(), xlsxexport.BuildFilename(deck.OriginalName), nil
}
