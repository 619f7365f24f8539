package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

const (
	sseBuffer    = 32
	sseKeepAlive = 25 * time.Second
)

type sseMessage struct {
	event   string
	payload json.RawMessage
}

// EventsHandler reenvía como Server-Sent Events los cambios publicados en un canal.
type EventsHandler struct {
	base      context.Context
	sub       ports.ChangeSubscriber
	log       *logger.Logger
	keepAlive time.Duration
}

// NewEventsHandler construye el handler. sub nil deja la ruta respondiendo 501.
// Cancelar base cierra todos los streams abiertos; el servidor lo cancela antes de apagarse.
func NewEventsHandler(base context.Context, sub ports.ChangeSubscriber, log *logger.Logger) *EventsHandler {
	if base == nil {
		base = context.Background()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EventsHandler{base: base, sub: sub, log: log, keepAlive: sseKeepAlive}
}

// Stream godoc
// @Summary      Stream de cambios del catálogo (SSE)
// @Tags         events
// @Produce      text/event-stream
// @Param        channel  path  string  true  "products-channel | categories-channel"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/events/{channel} [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	if h.sub == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{
			Code:    "NOT_SUPPORTED",
			Message: "the configured notifier does not support subscriptions",
		})
	}
	// El stream sigue vivo después de que el handler retorna.
	channel := utils.CopyString(c.Params("channel"))
	events, ok := usecase.ChannelEvents[channel]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unknown channel"})
	}

	ctx, cancel := context.WithCancel(h.base)
	msgs := make(chan sseMessage, sseBuffer)
	handlers := make(map[string]ports.EventHandler, len(events))
	for _, ev := range events {
		ev := ev // copia por iteración (go < 1.22)
		handlers[ev] = func(payload json.RawMessage) {
			select {
			case msgs <- sseMessage{event: ev, payload: payload}:
			default:
				// cliente lento: se descarta
			}
		}
	}
	unsubscribe, err := h.sub.Subscribe(ctx, channel, handlers)
	if err != nil {
		cancel()
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	log := h.log.Named("sse")
	keepAlive := h.keepAlive
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer unsubscribe()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		if _, err := fmt.Fprintf(w, ": connected to %s\n\n", channel); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-msgs:
				if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", m.event, m.payload); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
			}
			if err := w.Flush(); err != nil {
				log.Debug().Str("channel", channel).Err(err).Msg("cliente SSE desconectado")
				return
			}
		}
	}))
	return nil
}
