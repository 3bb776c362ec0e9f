package garden

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ZamarianPatrick/oasis-backend/catalog"
	"github.com/ZamarianPatrick/oasis-backend/model"
	"github.com/ZamarianPatrick/oasis-backend/providers"
	"github.com/ZamarianPatrick/oasis-backend/store"
)

type Outcome int

const (
	// Ignored means the placeholder was selected.
	Ignored Outcome = iota
	Cancelled
	Replaced
)

func (o Outcome) String() string {
	switch o {
	case Cancelled:
		return "cancelled"
	case Replaced:
		return "replaced"
	default:
		return "ignored"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type Result struct {
	Outcome  Outcome      `json:"outcome"`
	Previous *model.Plant `json:"previous,omitempty"`
	Current  *model.Plant `json:"current,omitempty"`
}

// Confirmer asks the user whether the selected plant should really replace
// the current one.
type Confirmer interface {
	Confirm(ctx context.Context, def model.PlantDefinition) (bool, error)
}

type ConfirmFunc func(ctx context.Context, def model.PlantDefinition) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, def model.PlantDefinition) (bool, error) {
	return f(ctx, def)
}

// Answer is a decision the caller already made, e.g. a flag in a request.
type Answer bool

func (a Answer) Confirm(context.Context, model.PlantDefinition) (bool, error) {
	return bool(a), nil
}

func ConfirmationPrompt(def model.PlantDefinition) string {
	return fmt.Sprintf("Are you sure you want to grow a %s?", strings.ToLower(def.Name))
}

type Garden struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	store    store.Store
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	notifier Notifier
	now      func() time.Time
}

func New(cat *catalog.Catalog, st store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface, notifier Notifier) *Garden {
	return &Garden{
		catalog:  cat,
		store:    st,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
		now:      time.Now,
	}
}

func (g *Garden) Catalog() *catalog.Catalog {
	return g.catalog
}

func (g *Garden) current(ctx context.Context) (*model.Plant, error) {
	p, err := g.store.Current(ctx)
	if err != nil {
		var iv *store.InvariantViolation
		if errors.As(err, &iv) {
			g.logger.Errorf(providers.TypeStore, "Current plant invariant broken: %s", iv)
			return nil, err
		}
		return nil, &PersistenceError{Op: "load current plant", Err: err}
	}
	return p, nil
}

func (g *Garden) Current(ctx context.Context) (*model.Plant, error) {
	return g.current(ctx)
}

func (g *Garden) History(ctx context.Context) ([]*model.Plant, error) {
	plants, err := g.store.History(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "load history", Err: err}
	}
	return plants, nil
}

// RequestReplacement swaps the current plant for a new one grown from
// selected. Selecting the placeholder or declining the confirmation leaves
// the store untouched and is not an error.
func (g *Garden) RequestReplacement(ctx context.Context, selected model.PlantDefinition, confirm Confirmer) (*Result, error) {
	if selected.IsPlaceholder() {
		g.metrics.IncReplacements(Ignored.String())
		return &Result{Outcome: Ignored}, nil
	}

	def, err := g.catalog.Lookup(selected.Name)
	if err != nil {
		return nil, err
	}
	if def != selected {
		return nil, fmt.Errorf("%q does not match the catalog entry: %w", selected.Name, catalog.ErrUnknownPlant)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	old, err := g.current(ctx)
	if err != nil {
		g.metrics.IncReplacements("failed")
		return nil, err
	}

	if !old.FullyGrown() {
		g.metrics.IncReplacements("not_ready")
		return nil, &NotReadyError{Phase: old.Phase}
	}

	ok, err := confirm.Confirm(ctx, def)
	if err != nil {
		g.metrics.IncReplacements("failed")
		return nil, fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		g.logger.Debugf(providers.TypeShop, "Replacement with %s cancelled", def.Name)
		g.metrics.IncReplacements(Cancelled.String())
		return &Result{Outcome: Cancelled, Current: old}, nil
	}

	next := model.NewPlant(def, g.now())
	if err = g.store.Replace(ctx, old.ID, next); err != nil {
		g.metrics.IncReplacements("failed")
		var iv *store.InvariantViolation
		if errors.As(err, &iv) {
			g.logger.Errorf(providers.TypeStore, "Replacement would break the current plant invariant: %s", iv)
			return nil, err
		}
		g.logger.Errorf(providers.TypeShop, "Error saving plant: %s", err)
		return nil, &PersistenceError{Op: "replace current plant", Err: err}
	}

	previous := *old
	previous.IsCurrent = false

	g.logger.Infof(providers.TypeShop, "Replaced %s #%d with %s #%d", previous.Species, previous.ID, next.Species, next.ID)
	g.metrics.IncReplacements(Replaced.String())
	g.notifier.Publish(Event{Kind: EventReplaced, Plant: next, Previous: &previous})

	return &Result{Outcome: Replaced, Previous: &previous, Current: next}, nil
}

// Water pours amount onto the current plant and advances its phase.
func (g *Garden) Water(ctx context.Context, amount int) (*model.Plant, error) {
	if amount <= 0 || amount > model.MaxWaterAmount {
		return nil, ErrInvalidAmount
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.current(ctx)
	if err != nil {
		return nil, err
	}

	phase := p.Phase
	p.Water(amount)
	if err = g.store.Update(ctx, p); err != nil {
		return nil, &PersistenceError{Op: "water current plant", Err: err}
	}

	if p.Phase != phase {
		g.logger.Infof(providers.TypeShop, "%s #%d reached phase %d", p.Species, p.ID, p.Phase)
	}
	g.metrics.IncWaterings()
	g.notifier.Publish(Event{Kind: EventWatered, Plant: p})
	return p, nil
}

func (g *Garden) Rename(ctx context.Context, nickname string) (*model.Plant, error) {
	nickname = strings.TrimSpace(nickname)
	if utf8.RuneCountInString(nickname) > model.MaxNicknameLength {
		return nil, ErrNicknameLength
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.current(ctx)
	if err != nil {
		return nil, err
	}

	p.Nickname = nickname
	if err = g.store.Update(ctx, p); err != nil {
		return nil, &PersistenceError{Op: "rename current plant", Err: err}
	}

	g.notifier.Publish(Event{Kind: EventRenamed, Plant: p})
	return p, nil
}
