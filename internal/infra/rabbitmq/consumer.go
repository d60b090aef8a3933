package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// ErrChannelClosed indica que o broker fechou o canal; o processo deve reiniciar.
var ErrChannelClosed = errors.New("rabbitmq channel closed")

// EventHandler processa um evento. Erro faz Nack com requeue.
type EventHandler func(ctx context.Context, event domain.TransactionEvent) error

// Consumer lê os eventos "transaction.*" de uma fila durável.
type Consumer struct {
	channel *amqp.Channel
	queue   string
	tag     string
}

func NewConsumer(ch *amqp.Channel, queue, tag string) *Consumer {
	return &Consumer{channel: ch, queue: queue, tag: tag}
}

// Setup declara exchange, fila e bind, e limita o prefetch a 1 mensagem.
func (c *Consumer) Setup() error {
	// Prefetch 1: o broker espera o Ack antes de mandar a próxima
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}
	if err := DeclareExchange(c.channel); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	q, err := c.channel.QueueDeclare(
		c.queue, // name
		true,    // durable (sobrevive a restart do server)
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	// "Tudo que começar com 'transaction.' vai para a fila"
	if err := c.channel.QueueBind(q.Name, "transaction.#", domain.LedgerExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

// Run consome até o ctx ser cancelado (retorna nil) ou o canal cair (ErrChannelClosed).
func (c *Consumer) Run(ctx context.Context, handle EventHandler) error {
	msgs, err := c.channel.Consume(
		c.queue, // queue
		c.tag,   // consumer tag
		false,   // auto-ack desligado: Ack só depois de gravar
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	notifyClose := c.channel.NotifyClose(make(chan *amqp.Error, 1))

	log.Info().Str("queue", c.queue).Msg("Worker aguardando mensagens")

	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr := <-notifyClose:
			if amqpErr != nil {
				return fmt.Errorf("%w: %v", ErrChannelClosed, amqpErr)
			}
			return ErrChannelClosed
		case d, ok := <-msgs:
			if !ok {
				return ErrChannelClosed
			}
			c.deliver(ctx, d, handle)
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, d amqp.Delivery, handle EventHandler) {
	var event domain.TransactionEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		log.Error().Err(err).Bytes("body", d.Body).Msg("Mensagem com JSON inválido descartada")
		if err := d.Nack(false, false); err != nil {
			log.Error().Err(err).Msg("Erro ao enviar Nack (JSON inválido)")
		}
		return
	}

	if err := handle(ctx, event); err != nil {
		log.Error().Err(err).Str("transaction_id", event.TransactionID).Msg("Falha ao processar evento")
		// Requeue só na primeira entrega, para não entrar em loop infinito
		if err := d.Nack(false, !d.Redelivered); err != nil {
			log.Error().Err(err).Msg("Erro ao enviar Nack")
		}
		return
	}

	if err := d.Ack(false); err != nil {
		log.Error().Err(err).Msg("Erro ao enviar Ack")
	}
	log.Debug().Str("transaction_id", event.TransactionID).Msg("Evento processado e Ack enviado")
}
