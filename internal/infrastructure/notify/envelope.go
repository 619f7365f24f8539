// Package notify implementa los relays de notificaciones de cambios del catálogo.
package notify

import "encoding/json"

// Envelope formato en el que viaja un evento por Redis y por el relay SSE.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func encode(event string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Payload: raw})
}
