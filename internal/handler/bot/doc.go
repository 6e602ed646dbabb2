// Package bot contains the business handlers of the bot and the router that
// dispatches events to them.
//
// Handlers run at the innermost point of the event pipeline: the scope
// already carries the transaction, the conversation and the translations
// of the acting user. Routes are organised in groups tried in order
// (settings, admin, user, others); a group may be gated by a filter, and
// the first matching route of the first admitting group handles the event.
package bot
