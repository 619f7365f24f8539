package notify

import (
	"context"
	"fmt"

	"github.com/pusher/pusher-http-go/v5"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
)

// PusherNotifier publica en Pusher Channels. No admite suscripción desde el servidor.
type PusherNotifier struct {
	client *pusher.Client
}

var _ ports.ChangeNotifier = (*PusherNotifier)(nil)

// NewPusherNotifier crea el cliente. Con Host vacío se usa el cluster y siempre TLS.
func NewPusherNotifier(cfg config.PusherConfig) (*PusherNotifier, error) {
	if !cfg.Complete() {
		return nil, fmt.Errorf("pusher: credenciales incompletas")
	}
	client := &pusher.Client{
		AppID:   cfg.AppID,
		Key:     cfg.Key,
		Secret:  cfg.Secret,
		Cluster: cfg.Cluster,
		Secure:  true,
	}
	if cfg.Host != "" {
		client.Host = cfg.Host
	}
	return &PusherNotifier{client: client}, nil
}

// NewPusherNotifierWithClient usa un cliente ya armado (tests contra un servidor local).
func NewPusherNotifierWithClient(client *pusher.Client) *PusherNotifier {
	return &PusherNotifier{client: client}
}

// Publish dispara el evento. El cliente de Pusher no recibe contexto.
func (n *PusherNotifier) Publish(_ context.Context, channel, event string, payload any) error {
	if err := n.client.Trigger(channel, event, payload); err != nil {
		return fmt.Errorf("pusher: trigger %s/%s: %w", channel, event, err)
	}
	return nil
}
