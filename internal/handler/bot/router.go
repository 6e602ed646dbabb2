// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bot

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// Filter gates a route group.
type Filter interface {
	Allow(ctx context.Context, q store.Querier, actor *models.Actor) (bool, error)
}

// Matcher selects the events a route handles.
type Matcher func(scope *pipeline.Scope) bool

type route struct {
	match  Matcher
	handle pipeline.Handler
}

// Group is an ordered set of routes sharing an optional filter.
type Group struct {
	name   string
	filter Filter
	routes []route
}

func NewGroup(name string, filter Filter) *Group {
	return &Group{name: name, filter: filter}
}

// Handle adds a route to the group.
func (g *Group) Handle(match Matcher, handle pipeline.Handler) *Group {
	g.routes = append(g.routes, route{match: match, handle: handle})
	return g
}

// Router dispatches an event to the first matching route.
type Router struct {
	before []pipeline.Handler
	groups []*Group
}

func NewRouter(groups ...*Group) *Router {
	return &Router{groups: groups}
}

// Before registers a hook run ahead of routing. A failing hook stops the
// event.
func (r *Router) Before(hook pipeline.Handler) *Router {
	r.before = append(r.before, hook)
	return r
}

// Handle implements [pipeline.Handler]. Events no route matches are
// dropped.
func (r *Router) Handle(ctx context.Context, scope *pipeline.Scope) error {
	for _, hook := range r.before {
		if err := hook(ctx, scope); err != nil {
			return err
		}
	}

	for _, group := range r.groups {
		rt, ok := group.match(scope)
		if !ok {
			continue
		}

		if group.filter != nil {
			allowed, err := group.filter.Allow(ctx, scope.Tx, scope.Actor())
			if err != nil {
				return err
			}
			if !allowed {
				continue
			}
		}

		logger.FromContext(ctx).Debug().Str("group", group.name).Msg("event routed")
		return rt.handle(ctx, scope)
	}

	logger.FromContext(ctx).Debug().Str("kind", string(scope.Event.Kind)).Msg("no route matched")
	return nil
}

func (g *Group) match(scope *pipeline.Scope) (route, bool) {
	for _, rt := range g.routes {
		if rt.match(scope) {
			return rt, true
		}
	}
	return route{}, false
}

// Command matches a slash command by name.
func Command(name string) Matcher {
	return func(scope *pipeline.Scope) bool {
		return scope.Event.Command != nil && scope.Event.Command.Name == name
	}
}

// CallbackData matches button presses with exactly data.
func CallbackData(data string) Matcher {
	return func(scope *pipeline.Scope) bool {
		return scope.Event.IsCallback() && scope.Event.Callback.Data == data
	}
}

// CallbackIn matches button presses whose data is one of values.
func CallbackIn(values func() []string) Matcher {
	return func(scope *pipeline.Scope) bool {
		if !scope.Event.IsCallback() {
			return false
		}
		for _, v := range values() {
			if scope.Event.Callback.Data == v {
				return true
			}
		}
		return false
	}
}

// MemberStatus matches member updates reporting status.
func MemberStatus(status string) Matcher {
	return func(scope *pipeline.Scope) bool {
		return scope.Event.Kind == models.EventMemberUpdate && scope.Event.MemberStatus == status
	}
}

// AnyMessage matches every message from a user.
func AnyMessage() Matcher {
	return func(scope *pipeline.Scope) bool {
		return scope.Event.Kind == models.EventMessage && scope.Actor() != nil
	}
}
