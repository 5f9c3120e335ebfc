package container

import (
	"fmt"

	"github.com/samber/do"
	"github.com/serroba/shortlinks/internal/events"
	"github.com/serroba/shortlinks/internal/messaging"
	"go.uber.org/zap"
)

// EventsPackage provides the lifecycle event transport and its publishers.
func EventsPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.Transport, error) {
		opts := do.MustInvoke[*Options](i)
		wmLogger := messaging.NewZapLogger(do.MustInvoke[*zap.Logger](i).Named("watermill"))

		switch opts.Events {
		case BackendMemory:
			return messaging.NewGoChannelTransport(wmLogger), nil
		case BackendRedis:
			r, err := do.Invoke[*Redis](i)
			if err != nil {
				return nil, err
			}

			return messaging.NewRedisStreamTransport(r.Client, opts.ConsumerGroup, wmLogger)
		default:
			return nil, fmt.Errorf("unknown events backend %q", opts.Events)
		}
	})

	do.Provide(injector, func(i *do.Injector) (*events.Publishers, error) {
		transport, err := do.Invoke[*messaging.Transport](i)
		if err != nil {
			return nil, err
		}

		return events.NewPublishers(transport.Publisher), nil
	})
}

// ConsumerGroupPackage provides the audit consumers of lifecycle events.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		transport, err := do.Invoke[*messaging.Transport](i)
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(logger)
		events.RegisterConsumers(group, transport.Subscriber, events.NewAuditLog(logger), logger)

		return group, nil
	})
}
