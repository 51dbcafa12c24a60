package catalog

import (
	"context"
	"time"
)

// BookEventType 图书变更事件类型
type BookEventType string

const (
	BookCreated BookEventType = "created"
	BookUpdated BookEventType = "updated"
	BookDeleted BookEventType = "deleted"
)

// BookEvent 图书变更事件(事务提交后发布)
type BookEvent struct {
	Type       BookEventType `json:"type"`
	BookID     uint          `json:"book_id"`
	Name       string        `json:"name,omitempty"`
	EditorID   uint          `json:"editor_id,omitempty"`
	GenreID    uint          `json:"genre_id,omitempty"`
	AuthorIDs  []uint        `json:"author_ids,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewBookEvent 由图书生成事件
func NewBookEvent(t BookEventType, b *Book) BookEvent {
	evt := BookEvent{
		Type:       t,
		BookID:     b.ID,
		Name:       b.Name,
		OccurredAt: time.Now().UTC(),
	}
	if t != BookDeleted {
		evt.EditorID = b.EditorID
		evt.GenreID = b.GenreID
		evt.AuthorIDs = b.AuthorIDs()
	}
	return evt
}

// EventPublisher 事件发布
// 发布失败不影响已提交的事务，调用方只记录日志
type EventPublisher interface {
	PublishBookEvent(ctx context.Context, evt BookEvent) error
}
