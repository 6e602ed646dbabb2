package pipeline

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tg-lang-bot/internal/fsm"
	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// Dependencies are the collaborators of the standard stages.
type Dependencies struct {
	Logger   *logger.Logger
	Pool     ConnProvider
	Storages *store.Storages
	Platform CallbackAnswerer
	Resolver *i18n.Resolver
}

// StandardChain returns the chain every event runs through:
// trace, logging, transaction, shadow_ban, activity, locale_capture,
// translation.
func StandardChain(deps Dependencies) (*Chain, error) {
	switch {
	case deps.Logger == nil:
		return nil, fmt.Errorf("%w: logger is not provided", ErrConfiguration)
	case deps.Pool == nil:
		return nil, fmt.Errorf("%w: connection pool is not provided", ErrConfiguration)
	case deps.Storages == nil:
		return nil, fmt.Errorf("%w: storages are not provided", ErrConfiguration)
	case deps.Platform == nil:
		return nil, fmt.Errorf("%w: platform is not provided", ErrConfiguration)
	case deps.Resolver == nil:
		return nil, fmt.Errorf("%w: translation catalog is not provided", ErrConfiguration)
	}

	return NewChain(
		NewTraceStage(deps.Logger),
		NewLoggingStage(),
		NewTransactionStage(deps.Pool),
		NewShadowBanStage(deps.Storages.Users, deps.Platform),
		NewActivityStage(deps.Storages.Activity),
		NewLocaleCaptureStage(deps.Resolver.Catalog()),
		NewTranslationStage(deps.Resolver),
	), nil
}

// Processor runs events through a chain and a handler.
type Processor struct {
	handler Handler
	states  fsm.Storage
	logger  *logger.Logger
}

// NewProcessor composes chain and handler once.
func NewProcessor(chain *Chain, handler Handler, states fsm.Storage, logger *logger.Logger) (*Processor, error) {
	if chain == nil || handler == nil {
		return nil, fmt.Errorf("%w: chain and handler are required", ErrConfiguration)
	}
	if states == nil {
		return nil, fmt.Errorf("%w: conversation storage is not provided", ErrConfiguration)
	}

	logger.Info().Strs("stages", chain.Names()).Msg("event pipeline created")

	return &Processor{
		handler: chain.Then(handler),
		states:  states,
		logger:  logger,
	}, nil
}

// Process handles one event. The returned error is the error of the chain;
// by then every change made by the event has been rolled back.
func (p *Processor) Process(ctx context.Context, event models.Event) error {
	scope := &Scope{Event: event}

	if actor := event.Actor; actor != nil {
		conversation, err := fsm.Load(ctx, p.states, fsm.Key{ChatID: event.ChatID, UserID: actor.ID})
		if err != nil {
			return err
		}
		scope.Conversation = conversation
	}

	return p.handler(p.logger.WithContext(ctx), scope)
}
