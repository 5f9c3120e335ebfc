package events

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlinks/internal/messaging"
)

// Publishers holds the typed publish functions for link lifecycle events.
type Publishers struct {
	LinkCreated messaging.Publish[LinkCreated]
	LinkDeleted messaging.Publish[LinkDeleted]
}

// NewPublishers binds each event type to its topic on publisher.
func NewPublishers(publisher message.Publisher) *Publishers {
	return &Publishers{
		LinkCreated: messaging.NewPublishFunc[LinkCreated](publisher, TopicLinkCreated),
		LinkDeleted: messaging.NewPublishFunc[LinkDeleted](publisher, TopicLinkDeleted),
	}
}
