package repomanager

import (
	"context"

	"github.com/ericmlantz/backend/internal/server/repositories/credentials"
	"github.com/ericmlantz/backend/internal/server/repositories/matches"
	"github.com/ericmlantz/backend/internal/server/repositories/memstore"
	"github.com/ericmlantz/backend/internal/server/repositories/messages"
	"github.com/ericmlantz/backend/internal/server/repositories/restaurants"
	"github.com/ericmlantz/backend/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost
// on restart.
type MemoryRepositoryManager struct {
	store *memstore.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memstore.New()}
}

func (m *MemoryRepositoryManager) Credentials() credentials.Repository { return m.store.Credentials() }
func (m *MemoryRepositoryManager) Users() users.Repository             { return m.store.Users() }
func (m *MemoryRepositoryManager) Restaurants() restaurants.Repository { return m.store.Restaurants() }
func (m *MemoryRepositoryManager) Matches() matches.Repository         { return m.store.Matches() }
func (m *MemoryRepositoryManager) Messages() messages.Repository       { return m.store.Messages() }

func (m *MemoryRepositoryManager) Ping(context.Context) error  { return nil }
func (m *MemoryRepositoryManager) Close(context.Context) error { return nil }
