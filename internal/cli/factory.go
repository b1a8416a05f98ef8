package cli

import (
	"context"

	"taskpad/internal/config"
	"taskpad/internal/repository"
	"taskpad/internal/service"
	"taskpad/internal/store"
)

// OpenRepository is the ServiceFactory used by the taskpad binary: the
// configured storage backend behind a Repository.
func OpenRepository(ctx context.Context, cfg *config.Config) (service.Service, error) {
	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	return repository.New(st, repository.Options{
		CheckRevision: cfg.CheckRevision,
		Logger:        cfg.Logger(),
	}), nil
}
