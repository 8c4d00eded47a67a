package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/order-intake/internal/common"
	"github.com/joseph-ayodele/order-intake/internal/repository"
	"github.com/joseph-ayodele/order-intake/internal/session"
)

// IntakeHandler bridges the messaging gateway to the session engine. The
// gateway posts form-encoded Body/From pairs and expects the assistant's
// immediate reply in the response (request/response, not push).
type IntakeHandler struct {
	engine      *session.Engine
	transcripts repository.TranscriptRepository
	logger      *slog.Logger
}

func NewIntakeHandler(engine *session.Engine, transcripts repository.TranscriptRepository, logger *slog.Logger) *IntakeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntakeHandler{engine: engine, transcripts: transcripts, logger: logger}
}

// ReceiveSMS handles one inbound customer message.
func (h *IntakeHandler) ReceiveSMS(c *gin.Context) {
	body := strings.TrimSpace(c.PostForm("Body"))
	from := strings.TrimSpace(c.PostForm("From"))
	if body == "" || from == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body and From are required"})
		return
	}

	ctx := common.WithCustomerID(c.Request.Context(), from)
	reply, err := h.engine.HandleInbound(ctx, from, body)
	if err != nil {
		h.logger.Error("http.sms.failed",
			"req_id", common.RequestIDFromContext(ctx),
			"customer", from,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ListMessages returns the stored transcript for a phone number.
func (h *IntakeHandler) ListMessages(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing phone number query parameter."})
		return
	}

	turns, err := h.transcripts.ReadAll(c.Request.Context(), phone)
	if err != nil {
		h.logger.Error("http.messages.failed", "customer", phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": turns})
}
