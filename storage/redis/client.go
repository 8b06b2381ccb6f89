package redis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	redisotel "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/redis"
)

var (
	client *redis.Client
	once   sync.Once
	err    error

)

func Init() error {
	once.Do(func() {
		cfg := config.Cfg

		client = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			MinIdleConns: 5,
			MaxRetries:   3,
		})

		if cfg.TracingEnabled {
			client.AddHook(redisotel.NewTracingHook(cfg.ServiceName, cfg.RedisDB))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		defer cancel()

		if err = client.Ping(ctx).Err(); err != nil {
			return
		}
	})

	return err
}

func Client() *redis.Client {
	if client == nil {
		panic("Redis client not init")
	}
	return client
}

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}

	return client.Close()
}

func Key(parts ...string) string {
	prefix := config.Cfg.RedisPrefix
	if prefix == "" {
		prefix = "lbr"
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range parts {
		if part != "" {

			sb.WriteString(":")
			sb.WriteString(part)
		}
	}

	return sb.String()
}
