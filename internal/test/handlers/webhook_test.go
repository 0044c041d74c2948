package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
	"virtual-tryon-backend/internal/credits"
	"virtual-tryon-backend/internal/handlers"
)

const webhookSecret = "whsec_test_secret"

func newWebhookRouter(ledger credits.Ledger) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := handlers.NewWebhookHandler(ledger, webhookSecret, 50, logger)

	router := gin.New()
	router.POST("/webhooks/stripe", handler.HandleStripeWebhook)
	return router
}

func signedWebhookRequest(t *testing.T, payload []byte) *http.Request {
	t.Helper()
	now := time.Now()
	signature := webhook.ComputeSignature(now, payload, webhookSecret)
	header := fmt.Sprintf("t=%d,v1=%x", now.Unix(), signature)

	req, _ := http.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", header)
	return req
}

func checkoutCompletedPayload(userID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test",
		"api_version": "2025-06-30.basil",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test",
				"metadata": {"userID": %q}
			}
		}
	}`, userID))
}

func TestStripeWebhook_CheckoutCompletedGrantsCredits(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ledger := credits.NewMemoryLedger()
	accountID := uuid.New()
	require.NoError(t, ledger.CreateAccount(context.Background(), accountID, "a@b.com", 2))

	router := newWebhookRouter(ledger)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedWebhookRequest(t, checkoutCompletedPayload(accountID.String())))

	assert.Equal(t, http.StatusOK, w.Code)

	balance, err := ledger.Balance(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 52, balance)
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ledger := credits.NewMemoryLedger()
	router := newWebhookRouter(ledger)

	payload := checkoutCompletedPayload(uuid.New().String())
	req, _ := http.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_signature")
}

func TestStripeWebhook_MissingUserIDMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := newWebhookRouter(credits.NewMemoryLedger())

	payload := []byte(`{
		"id": "evt_test",
		"api_version": "2025-06-30.basil",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test", "metadata": {}}}
	}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedWebhookRequest(t, payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "userID")
}

func TestStripeWebhook_IgnoresOtherEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ledger := credits.NewMemoryLedger()
	accountID := uuid.New()
	require.NoError(t, ledger.CreateAccount(context.Background(), accountID, "a@b.com", 2))

	router := newWebhookRouter(ledger)

	payload := []byte(`{
		"id": "evt_test",
		"api_version": "2025-06-30.basil",
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_test"}}
	}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedWebhookRequest(t, payload))

	assert.Equal(t, http.StatusOK, w.Code)

	balance, err := ledger.Balance(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 2, balance)
}
