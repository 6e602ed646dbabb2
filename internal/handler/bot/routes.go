package bot

import "github.com/MKhiriev/tg-lang-bot/models"

// Init builds the router. Groups are tried in order: settings, admin, user,
// others.
func (h *Handler) Init() *Router {
	settings := NewGroup("settings", nil).
		Handle(Command("lang"), h.lang).
		Handle(CallbackData(models.CallbackSaveLocale), h.saveLocale).
		Handle(CallbackData(models.CallbackCancelLocale), h.cancelLocale).
		Handle(CallbackIn(h.resolver.Catalog().Locales), h.selectLocale)

	admin := NewGroup("admin", h.adminFilter).
		Handle(Command("help"), h.adminHelp).
		Handle(Command("ban"), h.ban).
		Handle(Command("unban"), h.unban).
		Handle(Command("statistics"), h.statistics)

	user := NewGroup("user", nil).
		Handle(Command("start"), h.start).
		Handle(Command("help"), h.help).
		Handle(MemberStatus(models.MemberStatusKicked), h.blocked)

	others := NewGroup("others", nil).
		Handle(AnyMessage(), h.echo)

	return NewRouter(settings, admin, user, others).
		Before(h.register).
		Before(h.supersedeLocaleSelection)
}
