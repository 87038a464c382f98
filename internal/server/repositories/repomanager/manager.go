// Package repomanager builds the user store backend selected in the server
// configuration and owns the lifecycle of its connections.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() *users.Store
	Close() error
}

// New opens the backend named by cfg.StoreBackend. Connection and migration
// failures are returned; nothing is retried.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	logger = logger.With("module", "repomanager", "backend", cfg.StoreBackend)

	var (
		m   RepositoryManager
		err error
	)
	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		m = NewMemoryRepositoryManager()
	case config.BackendPostgres:
		m, err = NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.BackendRedis:
		m, err = NewRedisRepositoryManager(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.BackendDynamoDB:
		m, err = NewDynamoDBRepositoryManager(ctx, awsSettingsFrom(cfg), cfg.DynamoDBTable)
	case config.BackendS3:
		m, err = NewS3RepositoryManager(ctx, awsSettingsFrom(cfg), cfg.S3Bucket)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s store init: %w", cfg.StoreBackend, err)
	}

	logger.Info(ctx, "user store ready")
	return m, nil
}

// MemoryRepositoryManager serves a process-local store.
type MemoryRepositoryManager struct {
	users *users.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewStore(users.NewMemoryRepository())}
}

func (m *MemoryRepositoryManager) Users() *users.Store { return m.users }

func (m *MemoryRepositoryManager) Close() error { return nil }
