package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	defaultDialTimeout = 2 * time.Second
	defaultBuffer      = 256
	publishTimeout     = 5 * time.Second
	redialPause        = time.Second
)

// ErrPublisherBusy is returned when the outgoing buffer is full and the
// event was dropped.
var ErrPublisherBusy = errors.New("activity publisher buffer full")

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("activity publisher closed")

// dial opens a broker connection whose TCP connect and AMQP handshake are
// bounded by timeout.
func dial(url string, timeout time.Duration) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// Publisher sends activity events to a durable RabbitMQ queue.  Publish only
// enqueues; a single goroutine owned by the Publisher drains the buffer,
// opening the connection on first use and reopening it after a failure.
// A Publisher with an empty URL drops every event, which lets the server
// run without a broker.
type Publisher struct {
	url         string
	queue       string
	dialTimeout time.Duration

	mu     sync.Mutex
	closed bool
	events chan ActivityEvent
	done   chan struct{}

	// owned by the run goroutine
	conn     *amqp.Connection
	ch       *amqp.Channel
	failedAt time.Time
}

// NewPublisher returns a Publisher for queueName on the broker at url.
func NewPublisher(url, queueName string) *Publisher {
	return newPublisher(url, queueName, defaultDialTimeout, defaultBuffer)
}

func newPublisher(url, queueName string, dialTimeout time.Duration, buffer int) *Publisher {
	p := &Publisher{url: url, queue: queueName, dialTimeout: dialTimeout}
	if url != "" {
		p.events = make(chan ActivityEvent, buffer)
		p.done = make(chan struct{})
		go p.run()
	}
	return p
}

// Enabled reports whether events are actually sent.
func (p *Publisher) Enabled() bool { return p != nil && p.url != "" }

// Publish hands ev to the sending goroutine and returns immediately.  When
// the buffer is full the event is dropped and ErrPublisherBusy returned.
func (p *Publisher) Publish(_ context.Context, ev ActivityEvent) error {
	if !p.Enabled() {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.events <- ev:
		return nil
	default:
		logrus.WithFields(logrus.Fields{"queue": p.queue, "event_id": ev.EventID}).
			Warn("rabbitmq: buffer full, activity event dropped")
		return ErrPublisherBusy
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	defer p.reset()
	for ev := range p.events {
		if err := p.send(ev); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"queue": p.queue, "event_id": ev.EventID}).
				Warn("rabbitmq: activity event not delivered")
		}
	}
}

func (p *Publisher) send(ev ActivityEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}
	ch, err := p.channel()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.reset()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// channel returns an open channel, dialing and declaring the queue when
// needed.  After a failed dial it refuses to redial for redialPause so a
// dead broker drains the buffer quickly.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	if !p.failedAt.IsZero() && time.Since(p.failedAt) < redialPause {
		return nil, errors.New("broker unavailable")
	}

	conn, err := dial(p.url, p.dialTimeout)
	if err != nil {
		p.failedAt = time.Now()
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.failedAt = time.Now()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		p.failedAt = time.Now()
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	p.failedAt = time.Time{}
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Close stops accepting events, waits for the buffered ones to be sent or
// dropped and releases the broker connection.
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
	p.mu.Unlock()
	<-p.done
	return nil
}
