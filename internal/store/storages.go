package store

import "github.com/MKhiriev/tg-lang-bot/internal/logger"

// Storages groups the repositories used by the pipeline and the handlers.
type Storages struct {
	Users    UserRepository
	Activity ActivityRepository
}

func NewStorages(logger *logger.Logger) *Storages {
	return &Storages{
		Users:    NewUserRepository(logger),
		Activity: NewActivityRepository(logger),
	}
}
