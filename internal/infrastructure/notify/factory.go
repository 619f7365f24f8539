package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// Relay notificador elegido por configuración. Subscriber es nil cuando el driver
// no permite suscribirse desde el servidor (pusher, none).
type Relay struct {
	Notifier   ports.ChangeNotifier
	Subscriber ports.ChangeSubscriber
	Close      func() error
}

// New arma el relay según NOTIFIER_DRIVER.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Relay, error) {
	noClose := func() error { return nil }
	switch cfg.Notifier.Driver {
	case config.NotifierNone:
		return &Relay{Notifier: Nop{}, Close: noClose}, nil
	case config.NotifierLocal:
		b := NewLocalBroker()
		return &Relay{Notifier: b, Subscriber: b, Close: noClose}, nil
	case config.NotifierPusher:
		n, err := NewPusherNotifier(cfg.Pusher)
		if err != nil {
			return nil, err
		}
		return &Relay{Notifier: n, Close: noClose}, nil
	case config.NotifierRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		b := NewRedisBroker(client, cfg.Redis.ChannelPrefix, log)
		return &Relay{Notifier: b, Subscriber: b, Close: b.Close}, nil
	}
	return nil, fmt.Errorf("notify: driver desconocido %q", cfg.Notifier.Driver)
}
