package notify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
)

// LocalBroker reparte los eventos dentro del mismo proceso. Sirve para una sola
// instancia y para el relay SSE en desarrollo.
type LocalBroker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]map[string]ports.EventHandler // canal -> id -> evento -> handler
}

// NewLocalBroker crea el broker vacío.
func NewLocalBroker() *LocalBroker {
	return &LocalBroker{subs: map[string]map[int]map[string]ports.EventHandler{}}
}

var (
	_ ports.ChangeNotifier   = (*LocalBroker)(nil)
	_ ports.ChangeSubscriber = (*LocalBroker)(nil)
)

// Publish entrega el evento a los suscriptores actuales del canal, en la goroutine de quien publica.
func (b *LocalBroker) Publish(_ context.Context, channel, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	b.mu.RLock()
	var targets []ports.EventHandler
	for _, handlers := range b.subs[channel] {
		if h, ok := handlers[event]; ok {
			targets = append(targets, h)
		}
	}
	b.mu.RUnlock()
	for _, h := range targets {
		h(raw)
	}
	return nil
}

// Subscribe registra los handlers hasta que se llame a unsubscribe o se cancele ctx.
func (b *LocalBroker) Subscribe(ctx context.Context, channel string, handlers map[string]ports.EventHandler) (func(), error) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[channel] == nil {
		b.subs[channel] = map[int]map[string]ports.EventHandler{}
	}
	b.subs[channel][id] = handlers
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[channel], id)
			if len(b.subs[channel]) == 0 {
				delete(b.subs, channel)
			}
			b.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		unsubscribe()
	}()
	return unsubscribe, nil
}
