package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру или объявить exchange
	ErrConnect = errors.New("mq: failed to connect")

	// ErrMarshal возвращается, когда событие нельзя сериализовать в JSON
	ErrMarshal = errors.New("mq: failed to marshal event")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("mq: failed to publish event")
)

// channel часть *amqp.Channel, которой пользуется Publisher
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события бронирований в topic exchange RabbitMQ.
// Ключ маршрутизации совпадает с типом события ("booking.created" и т.д.).
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	appID    string
	now      func() time.Time
}

func NewPublisher(url, exchange, appID string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}
	return newPublisher(ch, exchange, appID, conn), nil
}

func newPublisher(ch channel, exchange, appID string, conn *amqp.Connection) *Publisher {
	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		appID:    appID,
		now:      time.Now,
	}
}

// PublishJSON отправляет v как JSON с типом и ключом маршрутизации key
func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	msg, err := p.message(key, v)
	if err != nil {
		return err
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, key, err)
	}
	return nil
}

func (p *Publisher) message(key string, v any) (amqp.Publishing, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("%w: %s: %v", ErrMarshal, key, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    p.now().UTC(),
		Type:         key,
		AppId:        p.appID,
		Body:         body,
	}, nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда события выключены в конфиге
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
