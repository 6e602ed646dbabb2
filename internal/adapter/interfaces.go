// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the boundary to the chat platform. Outbound, it sends
// and edits messages, answers callbacks and publishes the command menu.
// Inbound, [EventFromUpdate] turns platform updates into [models.Event].
//
// The primary abstraction is [Platform]. The package ships a Bot API
// implementation over HTTP ([NewBotAPI]). Failed calls return an
// [*APIError] carrying the platform error code so callers can tell
// absorbable edit races ([IsBadRequest]) from real failures.
package adapter

import (
	"context"

	"github.com/MKhiriev/tg-lang-bot/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/platform_mock.go -package=mock

// Platform is the set of chat platform calls the bot makes.
type Platform interface {
	// SendMessage sends msg and returns the id of the created message.
	SendMessage(ctx context.Context, msg models.OutgoingMessage) (int, error)

	// EditMessageText replaces the text and keyboard of a message. A nil
	// keyboard removes the buttons.
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, keyboard models.InlineKeyboard) error

	// EditReplyMarkup replaces only the keyboard of a message. A nil
	// keyboard removes the buttons.
	EditReplyMarkup(ctx context.Context, chatID int64, messageID int, keyboard models.InlineKeyboard) error

	// AnswerCallback acknowledges a button press. text may be empty.
	AnswerCallback(ctx context.Context, callbackID string, text string) error

	// SetCommands publishes the command menu of one chat.
	SetCommands(ctx context.Context, chatID int64, commands []models.BotCommand) error

	// CopyMessage sends a copy of a message to toChatID and returns the id of
	// the copy.
	CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) (int, error)
}
