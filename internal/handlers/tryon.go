package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"virtual-tryon-backend/internal/middleware"
	"virtual-tryon-backend/internal/models"
	"virtual-tryon-backend/internal/services"
)

type TryOnHandler struct {
	service *services.TryOnService
}

func NewTryOnHandler(service *services.TryOnService) *TryOnHandler {
	return &TryOnHandler{service: service}
}

// TryOn runs one generation request. The credit is consumed before the
// provider is called, so an exhausted account gets 402 without any provider
// traffic.
func (h *TryOnHandler) TryOn(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.TryOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing_images",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), accountID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TryOnHandler) writeServiceError(c *gin.Context, err error) {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "server_error"})
		return
	}

	switch svcErr.Code {
	case services.ErrCodeNoCredits:
		c.JSON(http.StatusPaymentRequired, models.ErrorResponse{Error: "no_credits"})
	case services.ErrCodeNoImage:
		// Raw provider payload goes back for diagnostics; there is nothing
		// useful to render from it.
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_no_image",
			Message: svcErr.Message,
			Raw:     svcErr.Raw,
		})
	case services.ErrCodeAccountNotFound:
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "account_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "server_error",
			Message: svcErr.Message,
		})
	}
}
