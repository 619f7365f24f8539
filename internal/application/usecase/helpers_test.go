package usecase_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jhoicas/catalog-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// published evento capturado por recordingNotifier.
type published struct {
	Channel string
	Event   string
	Payload json.RawMessage
}

// recordingNotifier guarda cada publicación; fail fuerza un error.
type recordingNotifier struct {
	mu     sync.Mutex
	events []published
	fail   error
}

func (n *recordingNotifier) Publish(_ context.Context, channel, event string, payload any) error {
	raw, _ := json.Marshal(payload)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, published{Channel: channel, Event: event, Payload: raw})
	return n.fail
}

func (n *recordingNotifier) all() []published {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]published(nil), n.events...)
}

// fixture arma los casos de uso sobre un store en memoria.
type fixture struct {
	store      *memory.Store
	notifier   *recordingNotifier
	dispatcher *usecase.ChangeDispatcher
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	carts      *usecase.CartUseCase
	roles      *usecase.RoleUseCase
	users      *usecase.UserUseCase
	authz      *usecase.AuthorizationUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	n := &recordingNotifier{}
	d := usecase.NewChangeDispatcher(n, logger.Nop())
	return &fixture{
		store:      store,
		notifier:   n,
		dispatcher: d,
		categories: usecase.NewCategoryUseCase(store.Categories(), store.Products(), d),
		products:   usecase.NewProductUseCase(store.Products(), store.Categories(), d, nil),
		carts:      usecase.NewCartUseCase(store.Carts(), store.Products(), store.Categories()),
		roles:      usecase.NewRoleUseCase(store.Roles()),
		users:      usecase.NewUserUseCase(store.Users(), store.Roles()),
		authz:      usecase.NewAuthorizationUseCase(store.Roles()),
	}
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }
