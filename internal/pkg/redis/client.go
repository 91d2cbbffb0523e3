// internal/pkg/redis/client.go
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient 根据地址列表创建一个 Redis 客户端。
// addrs 格式为 "host1:port1,host2:port2"，单地址时为普通客户端，
// 多地址时为集群客户端，两者统一为 UniversalClient。
func NewClient(addrs string) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: strings.Split(addrs, ","),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addrs, err)
	}
	return client, nil
}
