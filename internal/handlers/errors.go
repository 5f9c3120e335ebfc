package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/shortener"
	"go.uber.org/zap"
)

const msgNotFoundOrNotOwned = "url not found or not authorized"

// linkError maps a Directory error onto an HTTP status.
func linkError(logger *zap.Logger, err error, notFound string) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidInput):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, shortener.ErrNotFound):
		return huma.Error404NotFound(notFound)
	case errors.Is(err, shortener.ErrRetriesExhausted):
		logger.Warn("short code space congested", zap.Error(err))

		return huma.Error503ServiceUnavailable("could not allocate a short code, try again")
	default:
		logger.Error("link operation failed", zap.Error(err))

		return huma.Error500InternalServerError("internal error")
	}
}

// ownerFromContext returns the authenticated caller as a link owner.
func ownerFromContext(ctx context.Context) (shortener.OwnerID, error) {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return "", huma.Error401Unauthorized("authentication required")
	}

	return shortener.OwnerID(p.UserID), nil
}
