package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"virtual-tryon-backend/internal/credits"
	"virtual-tryon-backend/internal/fal"
	"virtual-tryon-backend/internal/models"
)

// Provider is the generation service boundary. *fal.Client satisfies it.
type Provider interface {
	TryOn(ctx context.Context, input fal.TryOnInput) (*fal.Result, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// ResultStore mirrors generated images into our own bucket.
// *supabase.StorageClient satisfies it.
type ResultStore interface {
	UploadResult(userID uuid.UUID, filename string, data []byte) (string, string, error)
}

// TryOnService runs one generation attempt: consume a credit, call the
// provider, normalize and optionally re-host the result. The credit is
// consumed before the provider call so exhausted accounts never reach the
// provider.
type TryOnService struct {
	ledger          credits.Ledger
	provider        Provider
	store           ResultStore
	refundOnFailure bool
	log             *slog.Logger
}

// NewTryOnService creates a TryOnService. store may be nil, in which case
// results keep the provider-hosted URL.
func NewTryOnService(ledger credits.Ledger, provider Provider, store ResultStore, refundOnFailure bool, log *slog.Logger) *TryOnService {
	return &TryOnService{
		ledger:          ledger,
		provider:        provider,
		store:           store,
		refundOnFailure: refundOnFailure,
		log:             log,
	}
}

func (s *TryOnService) Generate(ctx context.Context, accountID uuid.UUID, req models.TryOnRequest) (*models.TryOnResponse, error) {
	consumed, err := s.ledger.TryConsume(ctx, accountID)
	if err != nil {
		if errors.Is(err, credits.ErrAccountNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeAccountNotFound,
				Message: "account not found",
				Err:     err,
			}
		}
		return nil, &ServiceError{
			Code:    ErrCodeInternal,
			Message: "credit store unavailable",
			Err:     err,
		}
	}

	if !consumed.OK {
		return nil, &ServiceError{
			Code:    ErrCodeNoCredits,
			Message: "no credits remaining",
		}
	}

	start := time.Now()
	result, err := s.provider.TryOn(ctx, fal.TryOnInput{
		ModelImage:    req.ModelImage,
		GarmentImage:  req.TshirtImage,
		GenerateVideo: req.GenerateVideo,
	})
	if err != nil {
		s.maybeRefund(ctx, accountID)
		return nil, &ServiceError{
			Code:    ErrCodeUpstreamFailed,
			Message: "generation provider call failed",
			Err:     err,
		}
	}

	if result.ImageURL == "" {
		s.maybeRefund(ctx, accountID)
		return nil, &ServiceError{
			Code:    ErrCodeNoImage,
			Message: "provider returned no image reference",
			Raw:     result.Raw,
		}
	}

	imageURL := result.ImageURL
	if s.store != nil {
		if mirrored, err := s.mirrorResult(ctx, accountID, result.ImageURL); err != nil {
			s.log.Warn("failed to mirror result image, keeping provider URL",
				"account_id", accountID, "error", err)
		} else {
			imageURL = mirrored
		}
	}

	resp := &models.TryOnResponse{
		ImageURL:         imageURL,
		GenerationTimeMs: time.Since(start).Milliseconds(),
		CreditsRemaining: consumed.Remaining,
	}
	if result.VideoURL != "" {
		resp.VideoURL = &result.VideoURL
	}

	s.log.Info("generation completed",
		"account_id", accountID,
		"remaining", consumed.Remaining,
		"has_video", resp.VideoURL != nil,
		"duration_ms", resp.GenerationTimeMs)

	return resp, nil
}

// mirrorResult downloads the provider-hosted image and re-uploads it to our
// bucket so the URL survives provider-side expiry.
func (s *TryOnService) mirrorResult(ctx context.Context, accountID uuid.UUID, imageURL string) (string, error) {
	data, err := s.provider.Download(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download result: %w", err)
	}

	filename := uuid.New().String() + ".jpg"
	_, publicURL, err := s.store.UploadResult(accountID, filename, data)
	if err != nil {
		return "", err
	}

	return publicURL, nil
}

// maybeRefund compensates the consumed credit after a failed provider call.
// Default policy is off: a failed attempt still costs a credit, matching the
// original behavior. The refund never touches exhaustion accounting; it is a
// plain grant.
func (s *TryOnService) maybeRefund(ctx context.Context, accountID uuid.UUID) {
	if !s.refundOnFailure {
		return
	}

	if _, err := s.ledger.Grant(ctx, accountID, 1); err != nil {
		s.log.Error("failed to refund credit", "account_id", accountID, "error", err)
	}
}
