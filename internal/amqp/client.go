package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/rabbitmq/amqp091-go"
)

// Client publishes ledger events to a topic exchange and consumes the ingest queue.
type Client struct {
	url          string
	exchangeName string
	queueName    string
	prefetch     int

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewClient(cfg config.AMQPConfig) (*Client, error) {
	c := &Client{
		url:          cfg.URL,
		exchangeName: cfg.Exchange,
		queueName:    cfg.IngestQueue,
		prefetch:     cfg.Prefetch,
	}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) connect() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := setup(channel, c.exchangeName, c.queueName, c.prefetch); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("setup exchange and queue: %w", err)
	}

	c.mu.Lock()
	c.conn, c.channel = conn, channel
	c.mu.Unlock()
	return nil
}

func setup(ch *amqp091.Channel, exchange, queue string, prefetch int) error {
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// ingest commands are routed by the queue name, events by ledger.<kind>.<action>
	if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			return fmt.Errorf("set qos: %w", err)
		}
	}
	return nil
}

func (c *Client) currentChannel() *amqp091.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

// Publish sends payload as persistent JSON under routingKey.
func (c *Client) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.currentChannel().PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.Debug().
		Str("exchange", c.exchangeName).
		Str("routing_key", routingKey).
		Msg("Mensagem publicada")
	return nil
}

// PublishIngest enqueues an ingest command on the ingest queue.
func (c *Client) PublishIngest(ctx context.Context, msg *IngestMessage) error {
	return c.Publish(ctx, c.queueName, msg)
}

// Handler processes one ingest message. Returning a Permanent error drops the
// message; any other error requeues it.
type Handler func(ctx context.Context, msg *IngestMessage) error

// Consume delivers ingest messages to handler until ctx is done or the channel closes.
func (c *Client) Consume(ctx context.Context, handler Handler) error {
	msgs, err := c.currentChannel().Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	logger.Info().Str("queue", c.queueName).Msg("Consumindo mensagens de ingestão")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Err(ctx.Err()).Msg("Encerrando consumo de mensagens")
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			c.dispatch(ctx, delivery, handler)
		}
	}
}

func (c *Client) dispatch(ctx context.Context, delivery amqp091.Delivery, handler Handler) {
	msg, err := IngestMessageFromJSON(delivery.Body)
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao decodificar mensagem")
		_ = delivery.Nack(false, false)
		return
	}

	if err := handler(ctx, msg); err != nil {
		requeue := !IsPermanent(err)
		logger.Error().
			Err(err).
			Str("message_id", msg.MessageId).
			Str("kind", string(msg.Kind)).
			Bool("requeue", requeue).
			Msg("Falha ao processar mensagem")
		_ = delivery.Nack(false, requeue)
		return
	}

	_ = delivery.Ack(false)
	logger.Info().
		Str("message_id", msg.MessageId).
		Str("kind", string(msg.Kind)).
		Msg("Mensagem processada")
}

// ConsumeWithRetry keeps consuming across broker restarts, redialing with exponential backoff.
func (c *Client) ConsumeWithRetry(ctx context.Context, handler Handler) error {
	attempt := 0
	for {
		err := c.Consume(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isConnectionError(err) {
			return err
		}

		wait := exponentialBackoff(attempt)
		logger.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("Conexão AMQP perdida, reconectando")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		if err := c.connect(); err != nil {
			logger.Error().Err(err).Msg("Falha ao reconectar ao broker")
			attempt++
			continue
		}
		attempt = 0
	}
}

func exponentialBackoff(attempt int) time.Duration {
	const maxWait = 30 * time.Second
	if attempt > 5 {
		return maxWait
	}
	wait := time.Second << uint(attempt)
	if wait > maxWait {
		return maxWait
	}
	return wait
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection", "eof", "broken pipe", "channel closed"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
