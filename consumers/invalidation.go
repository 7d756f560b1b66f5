package consumers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"

	"rental-backend/cache"
)

// InvalidationMessage tells other instances which room's cached
// entries to drop. Action "clear" wipes everything and carries no
// room id.
type InvalidationMessage struct {
	Action string `json:"action"` // "invalidate" or "clear"
	RoomID uint   `json:"room_id,omitempty"`
}

// Publisher broadcasts room-change notifications so every instance's
// process-local cache stays honest. It implements
// services.EventPublisher.
type Publisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
}

// NewPublisher connects to RabbitMQ and declares the invalidation
// queue.
func NewPublisher(rabbitURL, queueName string) (*Publisher, error) {
	if queueName == "" {
		queueName = "room_invalidation_queue"
	}

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	log.Printf("invalidation publisher connected, queue %q", queueName)
	return &Publisher{connection: conn, channel: ch, queueName: queueName}, nil
}

// PublishRoomChanged broadcasts an invalidation for one room.
func (p *Publisher) PublishRoomChanged(roomID uint) error {
	return p.publish(InvalidationMessage{Action: "invalidate", RoomID: roomID})
}

// PublishClear broadcasts a full-cache clear.
func (p *Publisher) PublishClear() error {
	return p.publish(InvalidationMessage{Action: "clear"})
}

func (p *Publisher) publish(msg InvalidationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal invalidation message: %w", err)
	}
	return p.channel.Publish("", p.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.connection != nil {
		p.connection.Close()
	}
}

// InvalidationConsumer applies broadcast invalidations to this
// instance's cache.
type InvalidationConsumer struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	cache      cache.RoomCache
}

// NewInvalidationConsumer connects and declares the queue the
// publisher writes to.
func NewInvalidationConsumer(rabbitURL, queueName string, c cache.RoomCache) (*InvalidationConsumer, error) {
	if queueName == "" {
		queueName = "room_invalidation_queue"
	}

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &InvalidationConsumer{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		cache:      c,
	}, nil
}

// Start consumes invalidation messages until the channel closes.
// Malformed payloads are rejected without requeue; applying an
// invalidation cannot fail, so everything else is acked.
func (c *InvalidationConsumer) Start() error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			c.processMessage(msg)
		}
	}()

	log.Printf("invalidation consumer listening on %q", c.queueName)
	return nil
}

func (c *InvalidationConsumer) processMessage(msg amqp.Delivery) {
	var m InvalidationMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		log.Printf("invalidation: dropping malformed message: %v", err)
		msg.Nack(false, false)
		return
	}

	switch m.Action {
	case "invalidate":
		if m.RoomID == 0 {
			log.Printf("invalidation: message without room id")
			msg.Nack(false, false)
			return
		}
		c.cache.InvalidateRoom(m.RoomID)
	case "clear":
		c.cache.Clear()
	default:
		log.Printf("invalidation: unknown action %q", m.Action)
		msg.Nack(false, false)
		return
	}

	if err := msg.Ack(false); err != nil {
		log.Printf("invalidation: ack failed: %v", err)
	}
}

func (c *InvalidationConsumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.connection != nil {
		c.connection.Close()
	}
}
