package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// RedisBroker publica los eventos con PUBLISH y permite suscribirse desde el servidor,
// de modo que varias instancias comparten el mismo relay.
type RedisBroker struct {
	client *redis.Client
	prefix string
	log    *logger.Logger
}

var (
	_ ports.ChangeNotifier   = (*RedisBroker)(nil)
	_ ports.ChangeSubscriber = (*RedisBroker)(nil)
)

// NewRedisBroker crea el broker sobre un cliente ya configurado. prefix se antepone a cada canal.
func NewRedisBroker(client *redis.Client, prefix string, log *logger.Logger) *RedisBroker {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisBroker{client: client, prefix: prefix, log: log}
}

func (b *RedisBroker) channel(name string) string { return b.prefix + name }

// Publish envía {event, payload} al canal.
func (b *RedisBroker) Publish(ctx context.Context, channel, event string, payload any) error {
	msg, err := encode(event, payload)
	if err != nil {
		return fmt.Errorf("redis notifier: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel(channel), msg).Err(); err != nil {
		return fmt.Errorf("redis notifier: publish %s: %w", channel, err)
	}
	return nil
}

// Subscribe se suscribe al canal y despacha cada mensaje al handler de su evento.
// Retorna cuando la suscripción está confirmada.
func (b *RedisBroker) Subscribe(ctx context.Context, channel string, handlers map[string]ports.EventHandler) (func(), error) {
	ps := b.client.Subscribe(ctx, b.channel(channel))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis notifier: subscribe %s: %w", channel, err)
	}

	var once sync.Once
	unsubscribe := func() { once.Do(func() { _ = ps.Close() }) }

	msgs := ps.Channel()
	go func() {
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
					b.log.Warn().Err(err).Str("channel", channel).Msg("mensaje redis inválido")
					continue
				}
				if h, ok := handlers[env.Event]; ok {
					h(env.Payload)
				}
			}
		}
	}()
	return unsubscribe, nil
}

// Close cierra el cliente Redis.
func (b *RedisBroker) Close() error {
	return b.client.Close()
}
