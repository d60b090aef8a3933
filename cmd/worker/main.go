package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/config"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/mongodb"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Worker de auditoria: consome "transaction.*" e grava cada evento no MongoDB.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuração inválida")
	}
	config.SetupLogger(cfg)

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI()))
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao criar client MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Erro ao desconectar Mongo")
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("Erro ao pingar MongoDB")
	}
	log.Info().Msg("✅ Conectado ao MongoDB!")
	auditRepo := mongodb.NewAuditRepository(mongoClient, cfg.Mongo.Database)

	conn, err := amqp.DialConfig(cfg.RabbitMQ.URL(), amqp.Config{
		Properties: amqp.Table{
			"connection_name": "AuditWorker_Consumer",
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao conectar no RabbitMQ")
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("Erro ao fechar conexão RabbitMQ")
		}
	}()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao abrir canal")
	}
	defer func() {
		if err := ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			log.Error().Err(err).Msg("Erro ao fechar canal RabbitMQ")
		}
	}()

	consumer := rabbitmq.NewConsumer(ch, "audit_queue", "audit_worker")
	if err := consumer.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Erro ao preparar fila de auditoria")
	}

	// Graceful Shutdown: Ctrl+C ou SIGTERM cancelam o ctx e o Run retorna
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx, auditRepo.Handle); err != nil {
		// Canal caiu: sai com erro para o Docker subir de novo
		log.Fatal().Err(err).Msg("🔴 Consumo interrompido")
	}
	log.Info().Msg("Shutting down worker...")
}
