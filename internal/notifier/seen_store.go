package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"uni-meet/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SeenStore keeps the ids of events already surfaced to this client.
type SeenStore interface {
	Load(ctx context.Context) (map[string]struct{}, error)
	Add(ctx context.Context, ids ...string) error
}

// FileSeenStore stores the seen ids as a JSON array in a local file.
type FileSeenStore struct {
	path string
	mu   sync.Mutex
}

func NewFileSeenStore(path string) *FileSeenStore {
	return &FileSeenStore{path: path}
}

// Load 读取已看过的活动ID, 文件不存在或损坏时返回空集合
func (s *FileSeenStore) Load(_ context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileSeenStore) load() map[string]struct{} {
	seen := map[string]struct{}{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.L.Debug("Failed to read seen file", zap.String("path", s.path), zap.Error(err))
		}
		return seen
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		logger.L.Debug("Ignoring corrupt seen file", zap.String("path", s.path), zap.Error(err))
		return seen
	}
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen
}

func (s *FileSeenStore) Add(_ context.Context, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := s.load()
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)

	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create seen dir: %w", err)
		}
	}
	// 先写临时文件再重命名, 避免写一半
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write seen file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// RedisSeenStore stores the seen ids in a Redis set.
type RedisSeenStore struct {
	redis *redis.Client
	key   string
}

func NewRedisSeenStore(client *redis.Client, key string) *RedisSeenStore {
	return &RedisSeenStore{
		redis: client,
		key:   key,
	}
}

func (s *RedisSeenStore) Load(ctx context.Context) (map[string]struct{}, error) {
	members, err := s.redis.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load seen ids: %w", err)
	}
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		seen[m] = struct{}{}
	}
	return seen, nil
}

func (s *RedisSeenStore) Add(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		members = append(members, id)
	}
	if err := s.redis.SAdd(ctx, s.key, members...).Err(); err != nil {
		return fmt.Errorf("save seen ids: %w", err)
	}
	return nil
}
