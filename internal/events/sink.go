package events

import (
	"context"

	"go.uber.org/zap"
)

// Sink receives decoded lifecycle events.
type Sink interface {
	LinkCreated(ctx context.Context, event *LinkCreated) error
	LinkDeleted(ctx context.Context, event *LinkDeleted) error
}

// AuditLog is a Sink that writes every event to the log.
type AuditLog struct {
	logger *zap.Logger
}

// NewAuditLog creates an audit sink.
func NewAuditLog(logger *zap.Logger) *AuditLog {
	return &AuditLog{logger: logger.Named("audit")}
}

func (a *AuditLog) LinkCreated(_ context.Context, event *LinkCreated) error {
	a.logger.Info("link created",
		zap.String("id", event.ID),
		zap.String("code", event.Code),
		zap.String("destinationUrl", event.DestinationURL),
		zap.String("ownerId", event.OwnerID),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("clientIp", event.ClientIP),
		zap.String("userAgent", event.UserAgent),
	)

	return nil
}

func (a *AuditLog) LinkDeleted(_ context.Context, event *LinkDeleted) error {
	a.logger.Info("link deleted",
		zap.String("id", event.ID),
		zap.String("ownerId", event.OwnerID),
		zap.Time("deletedAt", event.DeletedAt),
		zap.String("clientIp", event.ClientIP),
	)

	return nil
}

// Compile-time check.
var _ Sink = (*AuditLog)(nil)
