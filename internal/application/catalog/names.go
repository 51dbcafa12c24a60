package catalog

import (
	"context"
	"sort"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
)

// 名称锁的key，图书保存和出版社/类型的增改共用
func editorLockKey(name string) string { return nameLockKey("editor:", name) }

func genreLockKey(name string) string { return nameLockKey("genre:", name) }

func nameLockKey(prefix, name string) string {
	if name == "" {
		return ""
	}
	return prefix + name
}

// lockNames 按字典序获取名称锁，空key跳过
// 两个请求交叉引用同一组名称时不会死锁；返回的函数按逆序释放
func lockNames(ctx context.Context, locker catalog.NameLocker, keys ...string) (func(), error) {
	sorted := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			sorted = append(sorted, key)
		}
	}
	sort.Strings(sorted)

	unlocks := make([]func(), 0, len(sorted))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, key := range sorted {
		unlock, err := locker.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
