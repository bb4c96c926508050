package cache

import (
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore creates a Redis-backed idempotency store, falling back
// to the in-memory store when Redis is unreachable. The fallback keeps
// single-instance deployments working without a cache server; multi-instance
// deployments should treat the warning as a misconfiguration.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory idempotency store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		return NewInMemoryIdempotencyStore()
	}

	logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return store
}
