package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Tail binds a private, auto-deleted queue to every routing key on the
// exchange and calls fn for each decoded event until ctx is cancelled or
// the broker closes the delivery channel.  Messages that fail to decode
// are rejected without requeueing.
func Tail(ctx context.Context, url, exchange string, fn func(Event)) error {
	conn, err := dial(url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declareExchange(ch, exchange); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(q.Name, "#", exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, q.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			ev, err := Decode(d.Body)
			if err != nil {
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			fn(ev)
			_ = d.Ack(false)
		}
	}
}

// Decode parses a message body produced by AMQPPublisher.
func Decode(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return Event{}, errors.New("event without type")
	}
	return ev, nil
}
