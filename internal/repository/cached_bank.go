package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"examforge/internal/cache"
	"examforge/internal/domain"
	"examforge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedBankRepository is a read-through cache in front of a
// FileBankRepository. The cache key includes the file's mtime, so editing the
// bank invalidates the cached copy without any explicit purge. Cache failures
// are logged and degrade to a direct file load; they never fail a request.
type CachedBankRepository struct {
	inner *FileBankRepository
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedBankRepository(inner *FileBankRepository, c domain.Cache, ttl time.Duration) *CachedBankRepository {
	return &CachedBankRepository{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

func (r *CachedBankRepository) GetBank(ctx context.Context) ([]domain.Question, error) {
	key, err := r.cacheKey()
	if err != nil {
		// stat failed; let the inner repository produce the load error
		return r.inner.GetBank(ctx)
	}

	if cached, err := r.cache.Get(ctx, key); err == nil {
		var bank []domain.Question
		if err := json.Unmarshal([]byte(cached), &bank); err == nil {
			return bank, nil
		}
		logger.Get().Warn("Discarding undecodable cached bank", zap.String("key", key))
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Bank cache read failed, falling back to file", zap.Error(err))
	}

	// singleflight collapses concurrent loads of the same bank file
	v, err, _ := r.group.Do(key, func() (any, error) {
		bank, err := r.inner.GetBank(ctx)
		if err != nil {
			return nil, err
		}
		if encoded, err := json.Marshal(bank); err == nil {
			if err := r.cache.Set(ctx, key, string(encoded), r.ttl); err != nil {
				logger.Get().Warn("Bank cache write failed", zap.Error(err))
			}
		}
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Question), nil
}

func (r *CachedBankRepository) BankBytes(ctx context.Context) ([]byte, error) {
	return r.inner.BankBytes(ctx)
}

func (r *CachedBankRepository) cacheKey() (string, error) {
	abs, err := filepath.Abs(r.inner.Path())
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	return cache.GenerateCacheKey("bank", "file", abs,
		fmt.Sprintf("%d", info.ModTime().UnixNano())), nil
}
