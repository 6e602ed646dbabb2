package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/tg-lang-bot/internal/config"
	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/utils"
	"github.com/MKhiriev/tg-lang-bot/models"
)

const parseModeHTML = "HTML"

// botAPI implements [Platform] over the HTTP Bot API.
type botAPI struct {
	client *utils.HTTPClient
	token  string
	logger *logger.Logger
}

// NewBotAPI constructs a [Platform] calling cfg.APIEndpoint with cfg.Token.
func NewBotAPI(cfg config.Bot, logger *logger.Logger) Platform {
	logger.Debug().Str("endpoint", cfg.APIEndpoint).Msg("creating bot api adapter")
	return &botAPI{
		client: utils.NewHTTPClient(cfg.APIEndpoint, cfg.RequestTimeout),
		token:  cfg.Token,
		logger: logger,
	}
}

// envelope is the common shape of every Bot API response.
type envelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard models.InlineKeyboard `json:"inline_keyboard"`
}

type sentMessage struct {
	MessageID int `json:"message_id"`
}

func markup(keyboard models.InlineKeyboard) *inlineKeyboardMarkup {
	if keyboard == nil {
		return nil
	}
	return &inlineKeyboardMarkup{InlineKeyboard: keyboard}
}

func (b *botAPI) SendMessage(ctx context.Context, msg models.OutgoingMessage) (int, error) {
	body := map[string]any{
		"chat_id":    msg.ChatID,
		"text":       msg.Text,
		"parse_mode": parseModeHTML,
	}
	if msg.ReplyTo != 0 {
		body["reply_parameters"] = map[string]any{
			"message_id":                  msg.ReplyTo,
			"allow_sending_without_reply": true,
		}
	}
	if kb := markup(msg.Keyboard); kb != nil {
		body["reply_markup"] = kb
	}

	var sent sentMessage
	if err := b.call(ctx, "sendMessage", body, &sent); err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (b *botAPI) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, keyboard models.InlineKeyboard) error {
	body := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": parseModeHTML,
	}
	if kb := markup(keyboard); kb != nil {
		body["reply_markup"] = kb
	}

	return b.call(ctx, "editMessageText", body, nil)
}

func (b *botAPI) EditReplyMarkup(ctx context.Context, chatID int64, messageID int, keyboard models.InlineKeyboard) error {
	body := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}
	if kb := markup(keyboard); kb != nil {
		body["reply_markup"] = kb
	}

	return b.call(ctx, "editMessageReplyMarkup", body, nil)
}

func (b *botAPI) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	body := map[string]any{
		"callback_query_id": callbackID,
	}
	if text != "" {
		body["text"] = text
	}

	return b.call(ctx, "answerCallbackQuery", body, nil)
}

func (b *botAPI) SetCommands(ctx context.Context, chatID int64, commands []models.BotCommand) error {
	body := map[string]any{
		"commands": commands,
		"scope": map[string]any{
			"type":    "chat",
			"chat_id": chatID,
		},
	}

	return b.call(ctx, "setMyCommands", body, nil)
}

func (b *botAPI) CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) (int, error) {
	body := map[string]any{
		"chat_id":      toChatID,
		"from_chat_id": fromChatID,
		"message_id":   messageID,
	}

	var copied sentMessage
	if err := b.call(ctx, "copyMessage", body, &copied); err != nil {
		return 0, err
	}
	return copied.MessageID, nil
}

// call posts body to method and decodes the result into out when out is
// not nil.
func (b *botAPI) call(ctx context.Context, method string, body any, out any) error {
	log := logger.FromContext(ctx)

	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(fmt.Sprintf("/bot%s/%s", b.token, method))
	if err != nil {
		log.Err(err).Str("func", "*botAPI.call").Str("method", method).Msg("bot api request failed")
		return fmt.Errorf("%w: %s: %w", ErrRequest, method, err)
	}

	var env envelope
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.StatusCode() >= http.StatusBadRequest {
			return &APIError{Method: method, Code: resp.StatusCode(), Description: http.StatusText(resp.StatusCode())}
		}
		return fmt.Errorf("%w: %s: %w", ErrDecodingResponse, method, err)
	}

	if !env.OK {
		apiErr := &APIError{Method: method, Code: env.ErrorCode, Description: env.Description}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode()
		}
		if env.Parameters != nil && env.Parameters.RetryAfter > 0 {
			apiErr.RetryAfter = time.Duration(env.Parameters.RetryAfter) * time.Second
		}
		log.Warn().Str("func", "*botAPI.call").Str("method", method).
			Int("code", apiErr.Code).Str("description", apiErr.Description).Msg("bot api returned error")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("%w: %s result: %w", ErrDecodingResponse, method, err)
	}

	return nil
}
