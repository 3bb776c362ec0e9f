package api

import (
	"context"
	"sync"

	"github.com/ZamarianPatrick/oasis-backend/garden"
	"github.com/ZamarianPatrick/oasis-backend/providers"
	"github.com/google/uuid"
)

const plantChannelBuffer = 16

// Controller fans committed garden changes out to feed subscribers.
type Controller interface {
	garden.Notifier
	PlantChannel(ctx context.Context) <-chan garden.Event
	Subscribers() int
}

type controller struct {
	mutex         sync.RWMutex
	plantChannels map[string]chan garden.Event
	logger        providers.Logger
	metrics       providers.MetricsProviderInterface
}

func NewController(logger providers.Logger, metrics providers.MetricsProviderInterface) Controller {
	return &controller{
		plantChannels: make(map[string]chan garden.Event),
		logger:        logger,
		metrics:       metrics,
	}
}

// NewNotifier exposes the controller to the garden.
func NewNotifier(c Controller) garden.Notifier {
	return c
}

// Publish never blocks: a subscriber whose buffer is full misses the event.
func (c *controller) Publish(e garden.Event) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for id, out := range c.plantChannels {
		select {
		case out <- e:
		default:
			c.logger.Warnf(providers.TypeHTTP, "feed client %s is too slow, dropped %s event", id, e.Kind)
		}
	}
}

// PlantChannel subscribes to garden events until ctx is done, then the
// channel is closed.
func (c *controller) PlantChannel(ctx context.Context) <-chan garden.Event {
	ch := make(chan garden.Event, plantChannelBuffer)
	id := uuid.NewString()

	c.mutex.Lock()
	c.plantChannels[id] = ch
	c.metrics.SetSubscribers(len(c.plantChannels))
	c.mutex.Unlock()

	c.logger.Debugf(providers.TypeHTTP, "feed client connected %s", id)

	go func() {
		<-ctx.Done()
		c.mutex.Lock()
		delete(c.plantChannels, id)
		close(ch)
		c.metrics.SetSubscribers(len(c.plantChannels))
		c.mutex.Unlock()

		c.logger.Debugf(providers.TypeHTTP, "feed client closed %s", id)
	}()

	return ch
}

func (c *controller) Subscribers() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.plantChannels)
}
