package messaging

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// Transport pairs the publisher and subscriber of one message backend and
// owns their lifecycle.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// NewGoChannelTransport creates an in-process transport. Messages published
// while no subscriber is attached are dropped.
func NewGoChannelTransport(logger watermill.LoggerAdapter) *Transport {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger)

	return &Transport{Publisher: pubSub, Subscriber: pubSub}
}

// NewRedisStreamTransport creates a transport backed by Redis Streams.
// Subscribers with the same consumerGroup share the stream's messages.
func NewRedisStreamTransport(
	client redis.UniversalClient,
	consumerGroup string,
	logger watermill.LoggerAdapter,
) (*Transport, error) {
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client:     client,
		Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create redis stream publisher: %w", err)
	}

	subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        client,
		Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
		ConsumerGroup: consumerGroup,
	}, logger)
	if err != nil {
		_ = publisher.Close()

		return nil, fmt.Errorf("create redis stream subscriber: %w", err)
	}

	return &Transport{Publisher: publisher, Subscriber: subscriber}, nil
}

// Shutdown closes the publisher and the subscriber.
func (t *Transport) Shutdown() error {
	return errors.Join(t.Publisher.Close(), t.Subscriber.Close())
}
