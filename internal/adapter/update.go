// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKhiriev/tg-lang-bot/models"
)

// EventFromUpdate converts an inbound platform update. ok is false for
// update kinds the bot does not handle.
func EventFromUpdate(update tgbotapi.Update) (event models.Event, ok bool) {
	event.UpdateID = update.UpdateID

	switch {
	case update.Message != nil:
		msg := update.Message
		event.Kind = models.EventMessage
		event.Actor = actorFrom(msg.From)
		event.MessageID = msg.MessageID
		event.Text = msg.Text
		if msg.Chat != nil {
			event.ChatID = msg.Chat.ID
		}
		if msg.IsCommand() {
			event.Command = &models.Command{
				Name: msg.Command(),
				Args: msg.CommandArguments(),
			}
		}
		return event, true

	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		event.Kind = models.EventCallback
		event.Actor = actorFrom(cb.From)
		event.Callback = &models.Callback{ID: cb.ID, Data: cb.Data}
		if cb.Message != nil {
			event.Callback.MessageID = cb.Message.MessageID
			event.MessageID = cb.Message.MessageID
			if cb.Message.Chat != nil {
				event.ChatID = cb.Message.Chat.ID
			}
		} else if event.Actor != nil {
			// inline mode presses carry no message
			event.ChatID = event.Actor.ID
		}
		return event, true

	case update.MyChatMember != nil:
		member := update.MyChatMember
		event.Kind = models.EventMemberUpdate
		event.Actor = actorFrom(&member.From)
		event.ChatID = member.Chat.ID
		event.MemberStatus = member.NewChatMember.Status
		return event, true
	}

	return models.Event{}, false
}

func actorFrom(user *tgbotapi.User) *models.Actor {
	if user == nil {
		return nil
	}
	return &models.Actor{
		ID:           user.ID,
		Username:     user.UserName,
		LanguageCode: user.LanguageCode,
	}
}
