package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/shortlinks/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGoChannelTransport_RoundTrip(t *testing.T) {
	transport := messaging.NewGoChannelTransport(messaging.NewZapLogger(zap.NewNop()))

	received := make(chan *testEvent, 1)
	consumer := messaging.NewConsumer(transport.Subscriber, "test.topic", func(_ context.Context, e *testEvent) error {
		received <- e

		return nil
	}, zap.NewNop())

	group := messaging.NewConsumerGroup(zap.NewNop())
	group.Add(consumer)
	require.NoError(t, group.Start(context.Background()))

	publish := messaging.NewPublishFunc[testEvent](transport.Publisher, "test.topic")
	require.NoError(t, publish(&testEvent{ID: "42", Name: "answer"}))

	select {
	case event := <-received:
		assert.Equal(t, "42", event.ID)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	require.NoError(t, group.Shutdown())
	require.NoError(t, transport.Shutdown())
}

func TestTransport_Shutdown(t *testing.T) {
	pubErr := errors.New("publisher close")
	pub := &mockPublisher{closeErr: pubErr}
	sub := newMockSubscriber()
	transport := &messaging.Transport{Publisher: pub, Subscriber: sub}

	err := transport.Shutdown()

	require.ErrorIs(t, err, pubErr)
	assert.True(t, pub.closed)
	assert.True(t, sub.closed)
}
