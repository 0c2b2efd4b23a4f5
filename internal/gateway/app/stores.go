package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	snapshotcache "marketlens/internal/cache/snapshot"
	"marketlens/internal/collection"
	"marketlens/internal/gateway/config"
	snapshotrepo "marketlens/internal/gateway/repository/snapshot"
)

// backend is the collection backend plus whatever must be released with it.
type backend struct {
	collection.Backend
	close func() error
}

func openBackend(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (*backend, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendMemory:
		log.Info("collection store: memory")
		return &backend{Backend: snapshotrepo.NewMemoryStore(), close: noop}, nil

	case config.BackendFile:
		disk, err := snapshotcache.NewDiskStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize disk store: %w", err)
		}
		log.Info("collection store: file", zap.String("dir", cfg.Dir))
		return &backend{Backend: snapshotcache.NewCachedStore(disk, cfg.CacheEntries), close: noop}, nil

	case config.BackendPostgres:
		db, err := snapshotrepo.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to reach postgres: %w", err)
		}
		pg := snapshotrepo.NewPostgresStore(db)
		log.Info("collection store: postgres")
		return &backend{Backend: snapshotcache.NewCachedStore(pg, cfg.CacheEntries), close: pg.Close}, nil

	case config.BackendRedis:
		rs, err := snapshotrepo.NewRedisStore(snapshotrepo.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   "marketlens",
		})
		if err != nil {
			return nil, err
		}
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		log.Info("collection store: redis", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
		return &backend{Backend: snapshotcache.NewCachedStore(rs, cfg.CacheEntries), close: rs.Close}, nil

	case config.BackendS3:
		s3, err := snapshotrepo.NewS3Store(snapshotrepo.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 store: %w", err)
		}
		log.Info("collection store: s3", zap.String("bucket", cfg.S3.Bucket), zap.String("endpoint", cfg.S3.Endpoint))
		return &backend{Backend: snapshotcache.NewCachedStore(s3, cfg.CacheEntries), close: noop}, nil
	}
	return nil, errors.New("unknown store backend " + cfg.Backend)
}
