package ports

import (
	"context"
	"encoding/json"
)

// ChangeNotifier puerto de salida hacia el relay de notificaciones (Pusher, Redis, ...).
// Publish es best-effort: quien llama registra el error y sigue.
type ChangeNotifier interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

// EventHandler recibe el payload JSON de un evento.
type EventHandler func(payload json.RawMessage)

// ChangeSubscriber entrega en vivo los eventos de un canal. Lo implementan los brokers
// que permiten suscripción desde el servidor (Redis, local); Pusher no.
type ChangeSubscriber interface {
	// Subscribe registra un handler por nombre de evento y devuelve la función para cancelar.
	Subscribe(ctx context.Context, channel string, handlers map[string]EventHandler) (unsubscribe func(), err error)
}
