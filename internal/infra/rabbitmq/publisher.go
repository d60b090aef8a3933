package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// DeclareExchange garante a exchange de tópicos do livro-razão (idempotente).
func DeclareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		domain.LedgerExchange, // name
		"topic",               // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
}

type RabbitMQPublisher struct {
	channel *amqp.Channel
}

func NewRabbitMQPublisher(ch *amqp.Channel) *RabbitMQPublisher {
	return &RabbitMQPublisher{channel: ch}
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	bytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         bytes,
		DeliveryMode: amqp.Persistent, // Garante que a mensagem não suma se o Rabbit reiniciar
	}
	if event, ok := body.(domain.TransactionEvent); ok {
		msg.MessageId = event.TransactionID
		msg.Type = string(event.Type)
		msg.Timestamp = event.CreatedAt
	}

	err = p.channel.PublishWithContext(ctx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Info().Str("routing_key", routingKey).Str("message_id", msg.MessageId).Msg("Evento publicado no RabbitMQ")
	return nil
}
