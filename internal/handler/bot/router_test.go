package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFilter struct {
	allow bool
	err   error
}

func (f staticFilter) Allow(context.Context, store.Querier, *models.Actor) (bool, error) {
	return f.allow, f.err
}

func recordTo(calls *[]string, name string) pipeline.Handler {
	return func(ctx context.Context, scope *pipeline.Scope) error {
		*calls = append(*calls, name)
		return nil
	}
}

func TestRouter_FirstMatchWins(t *testing.T) {
	var calls []string
	r := NewRouter(
		NewGroup("a", nil).Handle(Command("x"), recordTo(&calls, "a.x")),
		NewGroup("b", nil).Handle(Command("x"), recordTo(&calls, "b.x")).Handle(AnyMessage(), recordTo(&calls, "b.any")),
	)

	require.NoError(t, r.Handle(context.Background(), &pipeline.Scope{Event: commandEvent(1, "x", "")}))
	require.NoError(t, r.Handle(context.Background(), &pipeline.Scope{Event: textEvent(1, "hi")}))

	assert.Equal(t, []string{"a.x", "b.any"}, calls)
}

func TestRouter_FilterRejectsGroup(t *testing.T) {
	var calls []string
	r := NewRouter(
		NewGroup("admin", staticFilter{allow: false}).Handle(Command("x"), recordTo(&calls, "admin")),
		NewGroup("user", nil).Handle(Command("x"), recordTo(&calls, "user")),
	)

	require.NoError(t, r.Handle(context.Background(), &pipeline.Scope{Event: commandEvent(1, "x", "")}))
	assert.Equal(t, []string{"user"}, calls)
}

func TestRouter_FilterNotConsultedWithoutMatch(t *testing.T) {
	filterErr := errors.New("must not be called")
	var calls []string
	r := NewRouter(
		NewGroup("admin", staticFilter{err: filterErr}).Handle(Command("ban"), recordTo(&calls, "admin")),
		NewGroup("user", nil).Handle(AnyMessage(), recordTo(&calls, "user")),
	)

	require.NoError(t, r.Handle(context.Background(), &pipeline.Scope{Event: textEvent(1, "hi")}))
	assert.Equal(t, []string{"user"}, calls)
}

func TestRouter_FilterError(t *testing.T) {
	filterErr := errors.New("db down")
	r := NewRouter(NewGroup("admin", staticFilter{err: filterErr}).Handle(Command("x"), recordTo(new([]string), "admin")))

	assert.ErrorIs(t, r.Handle(context.Background(), &pipeline.Scope{Event: commandEvent(1, "x", "")}), filterErr)
}

func TestRouter_BeforeHookStops(t *testing.T) {
	hookErr := errors.New("hook failed")
	var calls []string
	r := NewRouter(NewGroup("a", nil).Handle(AnyMessage(), recordTo(&calls, "a"))).
		Before(func(context.Context, *pipeline.Scope) error { return hookErr })

	assert.ErrorIs(t, r.Handle(context.Background(), &pipeline.Scope{Event: textEvent(1, "hi")}), hookErr)
	assert.Empty(t, calls)
}

func TestRouter_NoMatch(t *testing.T) {
	r := NewRouter(NewGroup("a", nil).Handle(Command("x"), recordTo(new([]string), "a")))

	assert.NoError(t, r.Handle(context.Background(), &pipeline.Scope{Event: models.Event{Kind: models.EventMessage}}))
}

func TestMatchers(t *testing.T) {
	cb := &pipeline.Scope{Event: callbackEvent(1, "en")}
	msg := &pipeline.Scope{Event: textEvent(1, "en")}
	anon := &pipeline.Scope{Event: models.Event{Kind: models.EventMessage, Text: "post"}}

	locales := func() []string { return []string{"en", "ru"} }

	assert.True(t, CallbackData("en")(cb))
	assert.False(t, CallbackData("en")(msg))
	assert.True(t, CallbackIn(locales)(cb))
	assert.False(t, CallbackIn(func() []string { return []string{"ru"} })(cb))
	assert.False(t, CallbackIn(locales)(msg))
	assert.True(t, AnyMessage()(msg))
	assert.False(t, AnyMessage()(anon))
	assert.False(t, AnyMessage()(cb))
	assert.False(t, Command("en")(msg))
}
