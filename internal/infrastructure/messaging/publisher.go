// Package messaging 把目录变更事件发布到RabbitMQ
package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// RoutingKey 事件路由键: catalog.book.<type>
func RoutingKey(t catalog.BookEventType) string {
	return "catalog.book." + string(t)
}

// sender mq.Publisher的最小能力(便于测试)
type sender interface {
	Exchange() string
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// AMQPPublisher 基于RabbitMQ的事件发布
// Broker不可用时由熔断器快速失败，避免每次保存图书都等待发布超时
type AMQPPublisher struct {
	sender  sender
	breaker *circuitbreaker.CircuitBreaker
	log     *zap.Logger
}

// NewAMQPPublisher 创建事件发布者
// breakerFailures为0时使用熔断器默认阈值
func NewAMQPPublisher(s sender, breakerFailures uint32, breakerTimeout time.Duration, log *zap.Logger) *AMQPPublisher {
	metrics.InitMetrics()

	cfg := circuitbreaker.Config{
		Timeout: breakerTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("事件发布熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	}
	if breakerFailures > 0 {
		cfg.ReadyToTrip = func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= breakerFailures
		}
	}
	breaker := circuitbreaker.New("mq:"+s.Exchange(), cfg)
	metrics.CircuitBreakerState.WithLabelValues(breaker.Name()).Set(float64(circuitbreaker.StateClosed))

	return &AMQPPublisher{sender: s, breaker: breaker, log: log}
}

// BreakerState 当前熔断器状态
func (p *AMQPPublisher) BreakerState() circuitbreaker.State {
	return p.breaker.State()
}

var _ catalog.EventPublisher = (*AMQPPublisher)(nil)

// PublishBookEvent 发布图书事件并记录指标
func (p *AMQPPublisher) PublishBookEvent(ctx context.Context, evt catalog.BookEvent) error {
	key := RoutingKey(evt.Type)
	err := p.breaker.Execute(func() error {
		return p.sender.Publish(ctx, key, evt)
	})
	if err != nil {
		metrics.IncCounterVec(metrics.MessagesPublishFailedTotal, map[string]string{"routing_key": key})
		p.log.Warn("发布图书事件失败",
			zap.String("routing_key", key),
			zap.Uint("book_id", evt.BookID),
			zap.Error(err),
		)
		return err
	}

	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.sender.Exchange(),
		"routing_key": key,
	})
	return nil
}

// NopPublisher 未启用消息队列时丢弃事件
type NopPublisher struct{}

var _ catalog.EventPublisher = NopPublisher{}

func (NopPublisher) PublishBookEvent(context.Context, catalog.BookEvent) error {
	return nil
}

// New 按配置创建事件发布者，返回的cleanup关闭连接
func New(cfg *config.Config, log *zap.Logger) (catalog.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := pub.Close(); err != nil {
			log.Error("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return NewAMQPPublisher(pub, cfg.MQ.BreakerFailures, cfg.MQ.BreakerTimeout, log), cleanup, nil
}
