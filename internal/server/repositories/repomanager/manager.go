// Package repomanager vends the repositories of one storage backend and owns
// its process-wide connection pool.
package repomanager

import (
	"context"
	"fmt"

	"github.com/ericmlantz/backend/internal/server/config"
	"github.com/ericmlantz/backend/internal/server/repositories/credentials"
	"github.com/ericmlantz/backend/internal/server/repositories/matches"
	"github.com/ericmlantz/backend/internal/server/repositories/messages"
	"github.com/ericmlantz/backend/internal/server/repositories/restaurants"
	"github.com/ericmlantz/backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	Credentials() credentials.Repository
	Users() users.Repository
	Restaurants() restaurants.Repository
	Matches() matches.Repository
	Messages() messages.Repository
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the pool; the manager is unusable afterwards.
	Close(ctx context.Context) error
}

// New connects to the backend selected by cfg.StorageBackend and prepares its
// schema (migrations or indexes).
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.BackendMongo:
		return NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
