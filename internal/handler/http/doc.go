// Package http implements the webhook transport of the bot.
//
// The platform posts every update as JSON to the webhook path. The handler
// checks the secret token header, converts the update into a
// [models.Event] and hands it to the dispatcher. Request tracing, access
// logging and panic recovery are handled by middleware.
package http
