package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"virtual-tryon-backend/internal/credits"
	"virtual-tryon-backend/internal/models"
	"virtual-tryon-backend/internal/supabase"
)

// AuthHandler proxies registration and login to the Supabase auth service
// and keeps the credit ledger in step: a fresh account starts with the
// configured credit grant.
type AuthHandler struct {
	supabase        *supabase.Client
	ledger          credits.Ledger
	startingCredits int
	log             *slog.Logger
}

func NewAuthHandler(sb *supabase.Client, ledger credits.Ledger, startingCredits int, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		supabase:        sb,
		ledger:          ledger,
		startingCredits: startingCredits,
		log:             log,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_request", Message: "email and password are required"})
		return
	}

	if err := h.supabase.SignUp(req.Email, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "signup_failed", Message: err.Error()})
		return
	}

	session, err := h.supabase.SignIn(req.Email, req.Password)
	if err != nil {
		// Registered but could not establish a session (e.g. email
		// confirmation pending). The profile row gets created on first login.
		c.JSON(http.StatusCreated, models.SessionResponse{Credits: h.startingCredits})
		return
	}

	if err := h.ledger.CreateAccount(c.Request.Context(), session.UserID, session.Email, h.startingCredits); err != nil {
		h.log.Error("failed to seed profile", "user_id", session.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "server_error"})
		return
	}

	c.JSON(http.StatusCreated, models.SessionResponse{
		AccessToken: session.AccessToken,
		UserID:      session.UserID.String(),
		Credits:     h.startingCredits,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid_request", Message: "email and password are required"})
		return
	}

	session, err := h.supabase.SignIn(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	// Accounts registered out-of-band (e.g. directly against Supabase) get
	// their ledger row on first login.
	if err := h.ledger.CreateAccount(c.Request.Context(), session.UserID, session.Email, h.startingCredits); err != nil {
		h.log.Error("failed to ensure profile", "user_id", session.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "server_error"})
		return
	}

	balance, err := h.ledger.Balance(c.Request.Context(), session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "server_error"})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		AccessToken: session.AccessToken,
		UserID:      session.UserID.String(),
		Credits:     balance,
	})
}
