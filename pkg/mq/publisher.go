package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// 设计说明：
// 领域事件发布器，基于RabbitMQ的topic交换机
// 1. 事件发布是尽力而为（best-effort）：发布失败只记日志，不影响业务事务
// 2. 评分统计的重算是同步完成的，事件仅用于下游订阅（如推荐、通知）
// 3. Enabled=false时返回NoopPublisher，调用方无需判空

// Event 领域事件
type Event struct {
	Type       string    `json:"type"`        // 如review.created
	OccurredAt time.Time `json:"occurred_at"` // 发生时间
	Payload    any       `json:"payload"`     // 事件数据
}

// 事件类型常量
const (
	EventBookCreated    = "book.created"
	EventBookUpdated    = "book.updated"
	EventBookDeleted    = "book.deleted"
	EventReviewCreated  = "review.created"
	EventReviewUpdated  = "review.updated"
	EventReviewDeleted  = "review.deleted"
	EventUserRegistered = "user.registered"
)

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
	Close() error
}

// AMQPPublisher RabbitMQ实现
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPPublisher 连接RabbitMQ并声明交换机
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	// durable topic交换机，路由键即事件类型
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("声明交换机失败: %w", err)
	}

	return &AMQPPublisher{conn: conn, exchange: exchange, ch: ch}, nil
}

// Publish 发布事件（路由键为事件类型）
func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(Event{
		Type:       eventType,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, eventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}
	return nil
}

// Close 关闭连接
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		p.ch.Close()
	}
	return p.conn.Close()
}

// NoopPublisher 空实现（MQ未启用时使用）
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType string, payload any) error { return nil }
func (NoopPublisher) Close() error                                                     { return nil }

// PublishAsync 尽力而为地发布事件：失败只记日志
// 业务用例在事务提交后调用，事件丢失不影响数据一致性
func PublishAsync(p Publisher, eventType string, payload any) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := p.Publish(ctx, eventType, payload); err != nil {
		log.Printf("[MQ] 发布事件失败 type=%s: %v", eventType, err)
	}
}
