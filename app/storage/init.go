package storage

import (
	"github.com/joefazee/atlas/internal/deps"
)

const (
	RepoKey = "storage_repository"
)

// InitRepositories registers the storage repository for the other modules.
func InitRepositories(container *deps.Container) {
	container.RegisterRepository(RepoKey, NewRepository(container.DB))
}
