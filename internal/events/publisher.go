package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrQueueFull is returned by AMQPPublisher.Publish when the send buffer
// has no room left, typically because the broker has been down for a while.
var ErrQueueFull = errors.New("event queue full")

const (
	queueSize      = 256
	publishTimeout = 5 * time.Second
)

// AMQPPublisher publishes events to a durable topic exchange on RabbitMQ.
// Publish only enqueues; a single background goroutine owns the connection,
// redials it after a failure and logs every event it could not deliver.
type AMQPPublisher struct {
	url      string
	exchange string
	log      *zap.Logger

	queue chan Event
	done  chan struct{}
	once  sync.Once

	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher returns a publisher for the broker at url and starts its
// sender.  Call Close to flush pending events and drop the connection.
func NewAMQPPublisher(url, exchange string, log *zap.Logger) *AMQPPublisher {
	p := &AMQPPublisher{
		url:      url,
		exchange: exchange,
		log:      log,
		queue:    make(chan Event, queueSize),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish queues ev for delivery without waiting on the broker.
func (p *AMQPPublisher) Publish(_ context.Context, ev Event) error {
	select {
	case p.queue <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events, waits for the queue to drain and closes the
// connection.  Publish must not be called after Close.
func (p *AMQPPublisher) Close() error {
	p.once.Do(func() { close(p.queue) })
	<-p.done
	return nil
}

func (p *AMQPPublisher) run() {
	defer close(p.done)
	defer p.reset()

	for ev := range p.queue {
		if err := p.send(ev); err != nil {
			p.log.Warn("rabbitmq: publish failed",
				zap.String("type", ev.Type),
				zap.String("event_id", ev.ID),
				zap.Error(err))
			p.reset()
		}
	}
}

func (p *AMQPPublisher) send(ev Event) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return ch.PublishWithContext(ctx, p.exchange, ev.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	})
}

// channel returns the open channel, dialling and declaring the exchange
// first when there is none.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if err := declareExchange(ch, p.exchange); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("exchange declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Durable so the exchange survives broker restarts.
func declareExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,    // name
		"topic", // kind
		true,    // durable
		false,   // autoDelete
		false,   // internal
		false,   // noWait
		nil,     // args
	)
}

func dial(url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Dial:      amqp.DefaultDial(2 * time.Second),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
}
