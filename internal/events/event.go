package events

import (
	"time"

	"github.com/serroba/shortlinks/internal/shortener"
)

const (
	TopicLinkCreated = "link.created"
	TopicLinkDeleted = "link.deleted"
)

// LinkCreated is emitted after a short link has been stored.
type LinkCreated struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	DestinationURL string    `json:"destinationUrl"`
	OwnerID        string    `json:"ownerId"`
	CreatedAt      time.Time `json:"createdAt"`
	ClientIP       string    `json:"clientIp,omitempty"`
	UserAgent      string    `json:"userAgent,omitempty"`
}

// NewLinkCreated builds the event for a freshly stored link.
func NewLinkCreated(link *shortener.ShortLink, clientIP, userAgent string) *LinkCreated {
	return &LinkCreated{
		ID:             string(link.ID),
		Code:           string(link.Code),
		DestinationURL: link.DestinationURL,
		OwnerID:        string(link.OwnerID),
		CreatedAt:      link.CreatedAt,
		ClientIP:       clientIP,
		UserAgent:      userAgent,
	}
}

// LinkDeleted is emitted after an owner removed one of their links.
type LinkDeleted struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	DeletedAt time.Time `json:"deletedAt"`
	ClientIP  string    `json:"clientIp,omitempty"`
}
