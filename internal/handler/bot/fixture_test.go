package bot

import (
	"context"
	"testing"

	"github.com/MKhiriev/tg-lang-bot/internal/access"
	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/fsm"
	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/mock"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	userID  int64 = 42
	adminID int64 = 1
)

type fixture struct {
	router   *Router
	catalog  *i18n.Catalog
	users    *mock.MockUserRepository
	activity *mock.MockActivityRepository
	platform *mock.MockPlatform
	q        *mock.MockQuerier
	states   *fsm.MemoryStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	catalog, err := i18n.LoadEmbedded("ru")
	require.NoError(t, err)

	f := &fixture{
		catalog:  catalog,
		users:    mock.NewMockUserRepository(ctrl),
		activity: mock.NewMockActivityRepository(ctrl),
		platform: mock.NewMockPlatform(ctrl),
		q:        mock.NewMockQuerier(ctrl),
		states:   fsm.NewMemoryStorage(),
	}

	adminFilter, err := access.NewRoleFilter(f.users, models.RoleAdmin)
	require.NoError(t, err)

	h := NewHandler(
		&store.Storages{Users: f.users, Activity: f.activity},
		f.platform,
		i18n.NewResolver(catalog, f.users),
		adminFilter,
		config.Bot{AdminIDs: []int64{adminID}},
		logger.Nop(),
	)
	f.router = h.Init()

	return f
}

// tr returns the translations of locale.
func (f *fixture) tr(t *testing.T, locale string) i18n.Translations {
	t.Helper()
	tr, ok := f.catalog.Lookup(locale)
	require.True(t, ok)
	return tr
}

// scope builds the scope the pipeline would hand to the router and expects
// the registration of a known actor the router runs first.
func (f *fixture) scope(t *testing.T, event models.Event, locale string) *pipeline.Scope {
	t.Helper()
	if event.Actor != nil {
		f.users.EXPECT().EnsureUser(gomock.Any(), f.q, gomock.Any()).Return(false, nil)
	}
	return f.rawScope(t, event, locale)
}

// rawScope is scope without the registration expectation.
func (f *fixture) rawScope(t *testing.T, event models.Event, locale string) *pipeline.Scope {
	t.Helper()
	s := &pipeline.Scope{
		Event:        event,
		Tx:           f.q,
		Locale:       locale,
		Translations: f.tr(t, locale),
	}
	if event.Actor != nil {
		c, err := fsm.Load(context.Background(), f.states, fsm.Key{ChatID: event.ChatID, UserID: event.Actor.ID})
		require.NoError(t, err)
		s.Conversation = c
	}
	return s
}

// awaiting puts the conversation of id into awaiting_locale with the
// picker message 100 and the given pending locale.
func (f *fixture) awaiting(t *testing.T, id int64, pending string) {
	t.Helper()
	require.NoError(t, f.states.Set(context.Background(), fsm.Key{ChatID: id, UserID: id}, models.ConversationState{
		Step:             models.StepAwaitingLocale,
		PendingMessageID: 100,
		PendingLocale:    pending,
	}))
}

func (f *fixture) state(t *testing.T, id int64) models.ConversationState {
	t.Helper()
	state, err := f.states.Get(context.Background(), fsm.Key{ChatID: id, UserID: id})
	require.NoError(t, err)
	return state
}

func commandEvent(from int64, name, args string) models.Event {
	return models.Event{
		UpdateID:  1,
		Kind:      models.EventMessage,
		Actor:     &models.Actor{ID: from, Username: "john", LanguageCode: "en"},
		ChatID:    from,
		MessageID: 10,
		Text:      "/" + name,
		Command:   &models.Command{Name: name, Args: args},
	}
}

func textEvent(from int64, text string) models.Event {
	return models.Event{
		UpdateID:  2,
		Kind:      models.EventMessage,
		Actor:     &models.Actor{ID: from, LanguageCode: "en"},
		ChatID:    from,
		MessageID: 11,
		Text:      text,
	}
}

func callbackEvent(from int64, data string) models.Event {
	return models.Event{
		UpdateID: 3,
		Kind:     models.EventCallback,
		Actor:    &models.Actor{ID: from, LanguageCode: "en"},
		ChatID:   from,
		Callback: &models.Callback{ID: "cb-1", Data: data, MessageID: 100},
	}
}

func sent(chatID int64, text string) models.OutgoingMessage {
	return models.OutgoingMessage{ChatID: chatID, Text: text}
}

func replied(chatID int64, replyTo int, text string) models.OutgoingMessage {
	return models.OutgoingMessage{ChatID: chatID, Text: text, ReplyTo: replyTo}
}

// embeddedTr loads translations without a full fixture, for building
// test tables.
func embeddedTr(t *testing.T, locale string) i18n.Translations {
	t.Helper()
	catalog, err := i18n.LoadEmbedded("ru")
	require.NoError(t, err)
	tr, ok := catalog.Lookup(locale)
	require.True(t, ok)
	return tr
}
