package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
)

// banTarget is the user named in a /ban or /unban argument: either a
// numeric id or an @username.
type banTarget struct {
	userID   int64
	username string
}

// parseBanTarget reads the first word of args. ok is false when the word
// is neither a number nor an @username.
func parseBanTarget(args string) (target banTarget, ok bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return banTarget{}, false
	}
	arg := fields[0]

	if username, found := strings.CutPrefix(arg, "@"); found {
		if username == "" {
			return banTarget{}, false
		}
		return banTarget{username: username}, true
	}

	for _, r := range arg {
		if r < '0' || r > '9' {
			return banTarget{}, false
		}
	}
	userID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return banTarget{}, false
	}
	return banTarget{userID: userID}, true
}

func (t banTarget) String() string {
	if t.username != "" {
		return "@" + t.username
	}
	return strconv.FormatInt(t.userID, 10)
}

// resolveTarget maps target to a stored user id and its current ban flag.
// An @username shared by several users is returned as an error wrapping
// [store.ErrAmbiguousUsername].
func (h *Handler) resolveTarget(ctx context.Context, scope *pipeline.Scope, target banTarget) (userID int64, banned, found bool, err error) {
	if target.username == "" {
		banned, found, err = h.storages.Users.GetBannedStatusByID(ctx, scope.Tx, target.userID)
		return target.userID, banned, found, err
	}

	user, found, err := h.storages.Users.GetUserByUsername(ctx, scope.Tx, target.username)
	if err != nil || !found {
		return 0, false, found, err
	}
	return user.UserID, user.Banned, true, nil
}

func (h *Handler) adminHelp(ctx context.Context, scope *pipeline.Scope) error {
	return h.answer(ctx, scope, scope.Translations.Text("/help_admin"))
}

func (h *Handler) ban(ctx context.Context, scope *pipeline.Scope) error {
	return h.changeBan(ctx, scope, true)
}

func (h *Handler) unban(ctx context.Context, scope *pipeline.Scope) error {
	return h.changeBan(ctx, scope, false)
}

// changeBan implements /ban (banned is true) and /unban.
func (h *Handler) changeBan(ctx context.Context, scope *pipeline.Scope, banned bool) error {
	tr := scope.Translations
	emptyKey, incorrectKey, unchangedKey, doneKey := "empty_ban_answer", "incorrect_ban_arg", "already_banned", "successfully_banned"
	if !banned {
		emptyKey, incorrectKey, unchangedKey, doneKey = "empty_unban_answer", "incorrect_unban_arg", "not_banned", "successfully_unbanned"
	}

	args := strings.TrimSpace(scope.Event.Command.Args)
	if args == "" {
		return h.reply(ctx, scope, tr.Text(emptyKey))
	}

	target, ok := parseBanTarget(args)
	if !ok {
		return h.reply(ctx, scope, tr.Text(incorrectKey))
	}

	userID, current, found, err := h.resolveTarget(ctx, scope, target)
	if errors.Is(err, store.ErrAmbiguousUsername) {
		return h.reply(ctx, scope, tr.Format("ambiguous_user", html.EscapeString(target.String())))
	}
	if err != nil {
		return err
	}
	if !found {
		return h.reply(ctx, scope, tr.Text("no_user"))
	}
	if current == banned {
		return h.reply(ctx, scope, tr.Text(unchangedKey))
	}

	if err = h.storages.Users.UpdateBannedStatusByID(ctx, scope.Tx, userID, banned); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Stringer("target", target).Int64("user_id", userID).Bool("banned", banned).
		Msg("ban status changed")

	return h.reply(ctx, scope, tr.Text(doneKey))
}

// statistics shows the most active users.
func (h *Handler) statistics(ctx context.Context, scope *pipeline.Scope) error {
	tr := scope.Translations

	stats, err := h.storages.Activity.TopUsers(ctx, scope.Tx, statisticsLimit)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return h.answer(ctx, scope, tr.Text("no_statistics"))
	}

	lines := make([]string, 0, len(stats))
	for i, stat := range stats {
		lines = append(lines, fmt.Sprintf("%d <b>%d</b>: %d", i+1, stat.UserID, stat.TotalActions))
	}

	return h.answer(ctx, scope, tr.Format("statistics", strings.Join(lines, "\n")))
}
