package events

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlinks/internal/messaging"
	"go.uber.org/zap"
)

// RegisterConsumers adds one consumer per lifecycle topic to group, each
// delivering into sink.
func RegisterConsumers(group *messaging.ConsumerGroup, subscriber message.Subscriber, sink Sink, logger *zap.Logger) {
	group.Add(messaging.NewConsumer(subscriber, TopicLinkCreated, sink.LinkCreated, logger))
	group.Add(messaging.NewConsumer(subscriber, TopicLinkDeleted, sink.LinkDeleted, logger))
}
