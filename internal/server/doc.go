// Package server runs the inbound transport of the bot and the event
// workers behind it.
//
// Updates arrive either by long polling or through a webhook endpoint,
// depending on the configuration. On SIGINT, SIGTERM or SIGQUIT the
// transport is stopped first, then the workers finish the events already
// queued.
package server
