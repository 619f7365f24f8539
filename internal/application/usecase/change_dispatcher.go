package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// Canales y eventos publicados tras cada mutación del catálogo.
const (
	ChannelProducts   = "products-channel"
	ChannelCategories = "categories-channel"

	EventProductCreated  = "product-created"
	EventProductUpdated  = "product-updated"
	EventProductDeleted  = "product-deleted"
	EventCategoryCreated = "category-created"
	EventCategoryUpdated = "category-updated"
	EventCategoryDeleted = "category-deleted"
)

// ChannelEvents eventos que puede emitir cada canal.
var ChannelEvents = map[string][]string{
	ChannelProducts:   {EventProductCreated, EventProductUpdated, EventProductDeleted},
	ChannelCategories: {EventCategoryCreated, EventCategoryUpdated, EventCategoryDeleted},
}

// DefaultDispatchBuffer eventos que pueden esperar publicación antes de descartarse.
const DefaultDispatchBuffer = 256

type change struct {
	ctx     context.Context
	channel string
	event   string
	payload json.RawMessage
}

// ChangeDispatcher segunda fase de toda mutación del catálogo: una vez confirmada la
// escritura, encola el evento y retorna. Un único worker publica en orden de encolado,
// así los suscriptores ven los cambios en el orden en que se confirmaron. Con la cola
// llena el evento se descarta; los errores se registran y no se reintenta.
type ChangeDispatcher struct {
	notifier ports.ChangeNotifier
	log      *logger.Logger

	mu      sync.RWMutex
	closed  bool
	queue   chan change
	pending sync.WaitGroup
	done    chan struct{}
	stop    sync.Once
}

// NewChangeDispatcher construye el dispatcher con DefaultDispatchBuffer. notifier nil desactiva la publicación.
func NewChangeDispatcher(notifier ports.ChangeNotifier, log *logger.Logger) *ChangeDispatcher {
	return NewChangeDispatcherWithBuffer(notifier, log, DefaultDispatchBuffer)
}

// NewChangeDispatcherWithBuffer igual que NewChangeDispatcher con una cola de size eventos.
func NewChangeDispatcherWithBuffer(notifier ports.ChangeNotifier, log *logger.Logger, size int) *ChangeDispatcher {
	if log == nil {
		log = logger.Nop()
	}
	if size < 1 {
		size = 1
	}
	d := &ChangeDispatcher{
		notifier: notifier,
		log:      log,
		queue:    make(chan change, size),
		done:     make(chan struct{}),
	}
	if notifier == nil {
		close(d.done)
		d.closed = true
		return d
	}
	go d.run()
	return d
}

func (d *ChangeDispatcher) run() {
	defer close(d.done)
	for c := range d.queue {
		d.publish(c)
		d.pending.Done()
	}
}

func (d *ChangeDispatcher) publish(c change) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("channel", c.channel).Str("event", c.event).Msg("notificador en pánico")
		}
	}()
	if err := d.notifier.Publish(c.ctx, c.channel, c.event, c.payload); err != nil {
		d.log.Warn().Err(err).Str("channel", c.channel).Str("event", c.event).Msg("publicación de cambio fallida")
		return
	}
	d.log.Debug().Str("channel", c.channel).Str("event", c.event).Msg("cambio publicado")
}

// Dispatch encola la publicación y retorna de inmediato.
func (d *ChangeDispatcher) Dispatch(ctx context.Context, channel, event string, payload any) {
	if d == nil || d.notifier == nil {
		return
	}
	// Se serializa aquí: los valores de la petición (p. ej. parámetros de ruta de Fiber)
	// dejan de ser válidos cuando el handler retorna.
	raw, err := json.Marshal(payload)
	if err != nil {
		d.log.Warn().Err(err).Str("channel", channel).Str("event", event).Msg("payload de cambio inválido")
		return
	}
	// La petición puede terminar antes que la publicación.
	c := change{ctx: context.WithoutCancel(ctx), channel: channel, event: event, payload: raw}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Debug().Str("channel", channel).Str("event", event).Msg("dispatcher detenido, evento descartado")
		return
	}
	d.pending.Add(1)
	select {
	case d.queue <- c:
	default:
		d.pending.Done()
		d.log.Warn().Str("channel", channel).Str("event", event).Msg("cola de notificaciones llena, evento descartado")
	}
}

// Flush espera a que se publiquen los eventos encolados hasta ahora; el worker sigue activo.
func (d *ChangeDispatcher) Flush() {
	if d == nil {
		return
	}
	d.pending.Wait()
}

// Wait publica lo pendiente y detiene el worker (apagado ordenado). Los Dispatch
// posteriores se descartan.
func (d *ChangeDispatcher) Wait() {
	if d == nil {
		return
	}
	d.stop.Do(func() {
		d.mu.Lock()
		if !d.closed {
			d.closed = true
			close(d.queue)
		}
		d.mu.Unlock()
	})
	<-d.done
}
