package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"virtual-tryon-backend/internal/credits"
	"virtual-tryon-backend/internal/models"
)

// WebhookHandler is the top-up collaborator: completed Stripe checkouts grant
// purchased credits to the account named in the session metadata.
type WebhookHandler struct {
	ledger             credits.Ledger
	webhookSecret      string
	creditsPerPurchase int
	log                *slog.Logger
}

func NewWebhookHandler(ledger credits.Ledger, webhookSecret string, creditsPerPurchase int, log *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		ledger:             ledger,
		webhookSecret:      webhookSecret,
		creditsPerPurchase: creditsPerPurchase,
		log:                log,
	}
}

func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_request", Message: "failed to read request body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_signature", Message: err.Error()})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		if err := h.handleCheckoutCompleted(c, event); err != nil {
			return
		}
	default:
		h.log.Debug("ignoring stripe event", "type", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *WebhookHandler) handleCheckoutCompleted(c *gin.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_request", Message: "failed to parse checkout session"})
		return err
	}

	userID, err := uuid.Parse(session.Metadata["userID"])
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_request", Message: "missing userID in session metadata"})
		return err
	}

	balance, err := h.ledger.Grant(c.Request.Context(), userID, h.creditsPerPurchase)
	if err != nil {
		h.log.Error("failed to grant purchased credits", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "server_error"})
		return err
	}

	h.log.Info("credits purchased", "user_id", userID, "granted", h.creditsPerPurchase, "balance", balance)
	return nil
}
