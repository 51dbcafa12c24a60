package catalog

import "sort"

// AuthorBook 作者-图书关联(联合主键)
type AuthorBook struct {
	AuthorID uint
	BookID   uint
}

// DiffAuthorIDs 计算作者关联的差集
// 返回需要新增的(在requested不在current，按请求顺序)和需要删除的(在current不在requested，升序)
// requested中的重复ID只算一次，0被忽略
func DiffAuthorIDs(current, requested []uint) (toAdd, toRemove []uint) {
	have := make(map[uint]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}

	want := make(map[uint]struct{}, len(requested))
	for _, id := range requested {
		if id == 0 {
			continue
		}
		if _, dup := want[id]; dup {
			continue
		}
		want[id] = struct{}{}
		if _, ok := have[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}

	for id := range have {
		if _, ok := want[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	sort.Slice(toRemove, func(i, j int) bool { return toRemove[i] < toRemove[j] })

	return toAdd, toRemove
}
