package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vixip/internal/service"
)

// DeckHandler handles deck upload, chat, transform and download endpoints.
type DeckHandler struct {
	deckService      service.DeckService
	chatService      service.ChatService
	transformService service.TransformService
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(
	deckService service.DeckService,
	chatService service.ChatService,
	transformService service.TransformService,
) *DeckHandler {
	return &DeckHandler{
		deckService:      deckService,
		chatService:      chatService,
		transformService: transformService,
	}
}

// Upload handles POST /api/v1/decks
func (h *DeckHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	deck, err := h.deckService.Upload(c.Request.Context(), service.DeckUploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, deck)
}

// List handles GET /api/v1/decks
func (h *DeckHandler) List(c *gin.Context) {
	decks, err := h.deckService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, decks)
}

// GetByID handles GET /api/v1/decks/:id
func (h *DeckHandler) GetByID(c *gin.Context) {
	id, ok := parseDeckID(c)
	if !ok {
		return
	}
	deck, err := h.deckService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, deck)
}

// Delete handles DELETE /api/v1/decks/:id
func (h *DeckHandler) Delete(c *gin.Context) {
	id, ok := parseDeckID(c)
	if !ok {
		return
	}
	if err := h.deckService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// Text handles GET /api/v1/decks/:id/text
func (h *DeckHandler) Text(c *gin.Context) {
	id, ok := parseDeckID(c)
	if !ok {
		return
	}
	text, err := h.deckService.ExtractedText(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"text": text})
}

type chatInput struct {
	Question string `json:"question" binding:"required"`
}

// Chat handles POST /api/v1/decks/:id/chat. The model's answer streams back
// as plain text chunks, flushed as fragments arrive.
func (h *DeckHandler) Chat(c *gin.Context) {
	id, ok := parseDeckID(c)
	if !ok {
		return
	}
	var input chatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "question field is required")
		return
	}

	fragments, err := h.chatService.Ask(c.Request.Context(), id, input.Question)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Stream(func(w io.Writer) bool {
		f, open := <-fragments
		if !open {
			return false
		}
		if f.Err != nil {
			// Headers are already sent; the most we can do is log and cut
			// the stream short.
			log.Printf("deckHandler.Chat: stream failed for deck %s: %v", id, f.Err)
			return false
		}
		_, _ = w.Write([]byte(f.Text))
		return true
	})
}

type transformInput struct {
	Instruction string `json:"instruction" binding:"required"`
}

// Transform handles POST /api/v1/decks/:id/transform
func (h *DeckHandler) Transform(c *gin.Context) {
	id, ok := parseDeckID(c)
	if !ok {
		return
	}
	var input transformInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "instruction field is required")
		return
	}

	result, err := h.transformService.Transform(c.Request.Context(), id, input.Instruction)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Download handles GET /api/v1/decks/:id/download
func (h *DeckHandler) Download(c *gin.Context) {
	id, ok := parseDeckID(c)
	if !ok {
		return
	}
	data, filename, err := h.deckService.DownloadResult(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.presentationml.presentation", data)
}

// Export handles GET /api/v1/decks/:id/export
func (h *DeckHandler) Export(c *gin.Context) {
	id, ok := parseDeckID(c)
	if !ok {
		return
	}
	data, filename, err := h.deckService.ExportWorkbook(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// parseDeckID reads the :id path param; on failure it writes the error
// response and returns false.
func parseDeckID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "deck id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
