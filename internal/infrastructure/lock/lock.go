// Package lock 名称互斥锁
//
// 保存图书时按名称"查找或创建"出版社/类型，同名请求必须串行，
// 否则并发请求可能各自创建一条同名记录(数据库唯一索引兜底，但会让其中一个请求失败)。
//
//   - Redis启用时使用分布式锁(SET NX PX + 校验token后释放)，多实例部署也能互斥
//   - 否则使用进程内锁
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// ErrLockTimeout 等待锁超时
var ErrLockTimeout = apperrors.New(apperrors.ErrCodeRedisError, "获取名称锁超时")

// New 按配置选择锁实现
func New(cfg *config.Config, client *goredis.Client, log *zap.Logger) catalog.NameLocker {
	metrics.InitMetrics()
	if client == nil {
		log.Info("名称锁使用进程内实现")
		return NewLocalLocker()
	}
	log.Info("名称锁使用Redis实现", zap.String("prefix", cfg.Lock.Prefix))
	return NewRedisLocker(client, cfg.Lock, log)
}

// observeWait 记录等待耗时
func observeWait(start time.Time) {
	if metrics.NameLockWaitDuration != nil {
		metrics.ObserveHistogram(metrics.NameLockWaitDuration, time.Since(start).Seconds())
	}
}

// =========================================
// 进程内锁
// =========================================

// LocalLocker 进程内按key互斥
// 每个key一个容量为1的channel，支持ctx取消；无人持有时回收
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker 创建进程内锁
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot)}
}

var _ catalog.NameLocker = (*LocalLocker)(nil)

// Lock 获取锁，ctx取消时放弃等待
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	start := time.Now()

	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, s, false)
		return nil, ctx.Err()
	}
	observeWait(start)

	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, s, true) })
	}, nil
}

func (l *LocalLocker) release(key string, s *slot, held bool) {
	if held {
		<-s.ch
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// =========================================
// Redis分布式锁
// =========================================

// unlockScript token一致才删除，避免释放别人的锁(锁过期后被其他实例重新获取)
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker 基于Redis的分布式锁
type RedisLocker struct {
	client *goredis.Client
	cfg    config.LockConfig
	token  func() string
	log    *zap.Logger
}

// NewRedisLocker 创建Redis锁
func NewRedisLocker(client *goredis.Client, cfg config.LockConfig, log *zap.Logger) *RedisLocker {
	return &RedisLocker{client: client, cfg: cfg, token: newToken, log: log.Named("lock")}
}

var _ catalog.NameLocker = (*RedisLocker)(nil)

// Lock 轮询SET NX直到成功、超过WaitTimeout或ctx取消
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	start := time.Now()
	fullKey := l.cfg.Prefix + key
	token := l.token()

	if l.cfg.WaitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.WaitTimeout)
		defer cancel()
	}

	retry := l.cfg.RetryInterval
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.cfg.TTL).Result()
		if err != nil && ctx.Err() == nil {
			return nil, &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: "获取名称锁失败", Err: err}
		}
		if ok {
			observeWait(start)
			return l.unlocker(fullKey, token), nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrLockTimeout
			}
			return nil, ctx.Err()
		case <-time.After(retry):
		}
	}
}

func (l *RedisLocker) unlocker(fullKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// 请求ctx可能已取消，释放锁使用独立的短超时
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			deleted, err := unlockScript.Run(ctx, l.client, []string{fullKey}, token).Int()
			if err != nil {
				// 释放失败时锁要等TTL过期，期间同名请求都会等待
				l.log.Error("释放名称锁失败",
					zap.String("key", fullKey),
					zap.Duration("ttl", l.cfg.TTL),
					zap.Error(err),
				)
				return
			}
			if deleted == 0 {
				l.log.Warn("名称锁已过期，持有期间可能被其他请求获取", zap.String("key", fullKey))
			}
		})
	}
}

func newToken() string {
	return uuid.NewString()
}
