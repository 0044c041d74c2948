package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"virtual-tryon-backend/internal/credits"
	"virtual-tryon-backend/internal/middleware"
	"virtual-tryon-backend/internal/models"
)

type CreditsHandler struct {
	ledger credits.Ledger
}

func NewCreditsHandler(ledger credits.Ledger) *CreditsHandler {
	return &CreditsHandler{ledger: ledger}
}

// GetCredits returns the caller's current credit balance.
func (h *CreditsHandler) GetCredits(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	balance, err := h.ledger.Balance(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, credits.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "account_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "server_error"})
		return
	}

	c.JSON(http.StatusOK, models.CreditsResponse{Credits: balance})
}
