package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pusher/pusher-http-go/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/notify"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

type sink struct {
	mu  sync.Mutex
	got []string
}

func (s *sink) handler(prefix string) ports.EventHandler {
	return func(payload json.RawMessage) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.got = append(s.got, prefix+":"+string(payload))
	}
}

func (s *sink) values() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.got...)
}

func TestLocalBroker_EntregaPorEvento(t *testing.T) {
	b := notify.NewLocalBroker()
	s := &sink{}
	unsubscribe, err := b.Subscribe(context.Background(), "products-channel", map[string]ports.EventHandler{
		"product-created": s.handler("created"),
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), "products-channel", "product-created", map[string]string{"id": "1"}))
	require.NoError(t, b.Publish(context.Background(), "products-channel", "product-deleted", map[string]string{"id": "2"}))
	require.NoError(t, b.Publish(context.Background(), "categories-channel", "product-created", map[string]string{"id": "3"}))
	assert.Equal(t, []string{`created:{"id":"1"}`}, s.values())

	unsubscribe()
	unsubscribe()
	require.NoError(t, b.Publish(context.Background(), "products-channel", "product-created", map[string]string{"id": "4"}))
	assert.Len(t, s.values(), 1)
}

func TestLocalBroker_CancelarContextoDesuscribe(t *testing.T) {
	b := notify.NewLocalBroker()
	s := &sink{}
	ctx, cancel := context.WithCancel(context.Background())
	_, err := b.Subscribe(ctx, "c", map[string]ports.EventHandler{"e": s.handler("e")})
	require.NoError(t, err)
	cancel()

	// la baja es asíncrona: eventualmente un publish deja de llegar
	require.Eventually(t, func() bool {
		before := len(s.values())
		_ = b.Publish(context.Background(), "c", "e", 1)
		return len(s.values()) == before
	}, time.Second, 10*time.Millisecond)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisBroker_PublicaSobre(t *testing.T) {
	_, client := newRedis(t)
	b := notify.NewRedisBroker(client, "catalog:", logger.Nop())
	s := &sink{}

	unsubscribe, err := b.Subscribe(context.Background(), "products-channel", map[string]ports.EventHandler{
		"product-updated": s.handler("updated"),
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, b.Publish(context.Background(), "products-channel", "product-created", map[string]string{"id": "x"}))
	require.NoError(t, b.Publish(context.Background(), "products-channel", "product-updated", map[string]string{"id": "y"}))

	require.Eventually(t, func() bool { return len(s.values()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, `updated:{"id":"y"}`, s.values()[0])
}

func TestRedisBroker_EnvelopeEnElCanalConPrefijo(t *testing.T) {
	_, client := newRedis(t)
	raw := client.Subscribe(context.Background(), "catalog:categories-channel")
	_, err := raw.Receive(context.Background())
	require.NoError(t, err)
	defer raw.Close()

	b := notify.NewRedisBroker(client, "catalog:", nil)
	require.NoError(t, b.Publish(context.Background(), "categories-channel", "category-deleted", map[string]string{"id": "c1"}))

	select {
	case m := <-raw.Channel():
		var env notify.Envelope
		require.NoError(t, json.Unmarshal([]byte(m.Payload), &env))
		assert.Equal(t, "category-deleted", env.Event)
		assert.JSONEq(t, `{"id":"c1"}`, string(env.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó el mensaje")
	}
}

func TestRedisBroker_ServidorCaidoDevuelveError(t *testing.T) {
	mr, client := newRedis(t)
	b := notify.NewRedisBroker(client, "", nil)
	mr.Close()
	assert.Error(t, b.Publish(context.Background(), "c", "e", 1))
}

func TestPusherNotifier_Trigger(t *testing.T) {
	var (
		mu   sync.Mutex
		body map[string]any
		path string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		path = r.URL.Path
		_ = json.Unmarshal(raw, &body)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	n := notify.NewPusherNotifierWithClient(&pusher.Client{
		AppID:  "123",
		Key:    "key",
		Secret: "secret",
		Host:   strings.TrimPrefix(srv.URL, "http://"),
		Secure: false,
	})
	require.NoError(t, n.Publish(context.Background(), "products-channel", "product-created", map[string]string{"id": "p1"}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/apps/123/events", path)
	assert.Equal(t, "product-created", body["name"])
	assert.Equal(t, []any{"products-channel"}, body["channels"])
	assert.JSONEq(t, `{"id":"p1"}`, body["data"].(string))
}

func TestPusherNotifier_ErrorDelServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := notify.NewPusherNotifierWithClient(&pusher.Client{AppID: "1", Key: "k", Secret: "s", Host: strings.TrimPrefix(srv.URL, "http://")})
	assert.Error(t, n.Publish(context.Background(), "c", "e", 1))
}

func TestNew_SegunDriver(t *testing.T) {
	ctx := context.Background()

	relay, err := notify.New(ctx, &config.Config{Notifier: config.NotifierConfig{Driver: config.NotifierNone}}, nil)
	require.NoError(t, err)
	assert.Nil(t, relay.Subscriber)

	relay, err = notify.New(ctx, &config.Config{Notifier: config.NotifierConfig{Driver: config.NotifierLocal}}, nil)
	require.NoError(t, err)
	assert.NotNil(t, relay.Subscriber)

	_, err = notify.New(ctx, &config.Config{Notifier: config.NotifierConfig{Driver: config.NotifierPusher}}, nil)
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	relay, err = notify.New(ctx, &config.Config{
		Notifier: config.NotifierConfig{Driver: config.NotifierRedis},
		Redis:    config.RedisConfig{Addr: mr.Addr()},
	}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, relay.Subscriber)
	assert.NoError(t, relay.Close())
}
