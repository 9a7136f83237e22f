package redisStore

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

type Store struct {
	client *redis.Client
	DB     int
	logger *logger_i.Logger
}

// NewStore connects and pings. The caller owns the returned store and must Close it.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	newClient := redis.NewClient(&redis.Options{
		Addr:                  opts.Addr,
		Password:              opts.Password,
		DB:                    opts.DB,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	logger := logger_i.NewLogger(fmt.Sprintf("Redis Store %d", opts.DB))

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		_ = newClient.Close()
		return nil, fmt.Errorf("redis %s is offline: %w", opts.Addr, err)
	}

	logger.Info("Redis store init successfully", "addr", opts.Addr)
	return &Store{
		client: newClient,
		DB:     opts.DB,
		logger: logger,
	}, nil
}

// NewFromClient wraps an existing client, used with miniredis in tests.
func NewFromClient(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("Redis Store"),
	}
}

func (s *Store) Close() error {
	s.logger.Info("Closing Redis store")
	return s.client.Close()
}
