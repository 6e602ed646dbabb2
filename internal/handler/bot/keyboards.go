package bot

import (
	"github.com/MKhiriev/tg-lang-bot/internal/i18n"
	"github.com/MKhiriev/tg-lang-bot/models"
)

const (
	checkedMark   = "🔘 "
	uncheckedMark = "⚪️ "
)

// menuCommands lists the command menu; the first userCommands entries are
// shown to everyone, the rest only to admins.
var menuCommands = []string{"start", "lang", "help", "ban", "unban", "statistics"}

const userCommands = 3

// localePicker renders one row per locale, checked marking the current one,
// followed by a cancel and a save button.
func localePicker(tr i18n.Translations, locales []string, checked string) models.InlineKeyboard {
	keyboard := make(models.InlineKeyboard, 0, len(locales)+1)
	for _, locale := range locales {
		mark := uncheckedMark
		if locale == checked {
			mark = checkedMark
		}
		keyboard = append(keyboard, []models.InlineButton{
			{Text: mark + tr.Text(locale), Data: locale},
		})
	}

	return append(keyboard, []models.InlineButton{
		{Text: tr.Text("cancel_lang_button_text"), Data: models.CallbackCancelLocale},
		{Text: tr.Text("save_lang_button_text"), Data: models.CallbackSaveLocale},
	})
}

// mainMenu returns the command menu for role.
func mainMenu(tr i18n.Translations, role models.Role) []models.BotCommand {
	names := menuCommands
	if role != models.RoleAdmin {
		names = names[:userCommands]
	}

	commands := make([]models.BotCommand, 0, len(names))
	for _, name := range names {
		commands = append(commands, models.BotCommand{
			Command:     name,
			Description: tr.Text("/" + name + "_description"),
		})
	}
	return commands
}
