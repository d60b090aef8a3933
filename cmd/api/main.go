package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/config"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/http/handler"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/http/router"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/memory"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/metrics"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/postgres"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/rabbitmq"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/rates"
	redisInfra "github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/redis"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// repositories agrupa a implementação escolhida por STORAGE
type repositories struct {
	wallets      gateway.WalletRepository
	users        gateway.UserRepository
	transactions gateway.TransactionRepository
	uow          gateway.TransactionManager
	cleanup      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuração inválida")
	}
	config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos := buildRepositories(ctx, cfg)
	defer repos.cleanup()

	// Redis é opcional: sem ele, idempotência fica em memória e taxas não são cacheadas
	var (
		idempotencyRepo gateway.IdempotencyRepository
		rateCache       gateway.RateCache
	)
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Não foi possível conectar ao Redis (idempotência em memória)")
		idempotencyRepo = memory.NewIdempotencyRepository()
	} else {
		log.Info().Msg("✅ Conectado ao Redis!")
		idempotencyRepo = redisInfra.NewIdempotencyRepository(redisClient)
		rateCache = redisInfra.NewRateCache(redisClient, cfg.RateCacheTTL)
	}

	var converter gateway.CurrencyConverter = rates.NewStaticConverter(domain.NewCatalog())
	if cfg.RateSource == config.RateSourceHTTP {
		converter = rates.NewHTTPConverter(cfg.RateServiceURL, nil, rateCache)
		log.Info().Str("url", cfg.RateServiceURL).Msg("Usando serviço remoto de câmbio")
	}

	eventPublisher, closeRabbit := connectPublisher(cfg)
	defer closeRabbit()

	recorder := metrics.NewRecorder()

	// Inicialização da Camada de UseCase (Regras de Negócio)
	processUseCase := usecase.NewProcessTransaction(repos.wallets, repos.users, repos.transactions, repos.uow, converter, eventPublisher, recorder)
	historyUseCase := usecase.NewGetTransactions(repos.wallets, repos.users, repos.transactions)
	registerUseCase := usecase.NewRegisterUser(repos.users, repos.wallets, repos.uow)
	createWalletUseCase := usecase.NewCreateWallet(repos.wallets, repos.users)
	getWalletUseCase := usecase.NewGetWallet(repos.wallets, repos.users)
	listWalletsUseCase := usecase.NewListWallets(repos.wallets, repos.users)

	routes := router.New(router.Dependencies{
		Users:          handler.NewUserHandler(registerUseCase),
		Wallets:        handler.NewWalletHandler(createWalletUseCase, getWalletUseCase, listWalletsUseCase),
		Transactions:   handler.NewTransactionHandler(processUseCase, historyUseCase),
		Idempotency:    idempotencyRepo,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Metrics:        recorder,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("🚀 Servidor rodando na porta %s (storage=%s)", cfg.Port, cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Falha ao iniciar servidor HTTP")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Desligando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Falha no shutdown do servidor")
	}
}

func buildRepositories(ctx context.Context, cfg *config.Config) repositories {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("STORAGE=memory: dados serão perdidos ao reiniciar")
		store := memory.NewStore()
		return repositories{
			wallets:      memory.NewWalletRepository(store),
			users:        memory.NewUserRepository(store),
			transactions: memory.NewTransactionRepository(store),
			uow:          memory.NewUow(store),
			cleanup:      func() {},
		}
	}

	dbPool, err := postgres.NewPool(ctx, cfg.DB.URL(), cfg.DB.MaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("Não foi possível conectar ao banco de dados")
	}
	if err := postgres.Migrate(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Falha ao aplicar schema")
	}
	log.Info().Msg("✅ Conectado ao PostgreSQL com sucesso!")

	return repositories{
		wallets:      postgres.NewWalletRepository(dbPool),
		users:        postgres.NewUserRepository(dbPool),
		transactions: postgres.NewTransactionRepository(dbPool),
		//  Unit of Work (Gerenciador de Transações)
		uow:     postgres.NewUow(dbPool),
		cleanup: dbPool.Close,
	}
}

// connectPublisher abre o canal do RabbitMQ. Sem broker, a API segue sem publicar eventos.
func connectPublisher(cfg *config.Config) (gateway.EventPublisher, func()) {
	rabbitConn, err := amqp.DialConfig(cfg.RabbitMQ.URL(), amqp.Config{
		Properties: amqp.Table{
			"connection_name": "WalletAPI_Publisher",
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("Falha ao conectar no RabbitMQ (Eventos não serão enviados)")
		return nil, func() {}
	}

	ch, err := rabbitConn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("Falha ao abrir canal RabbitMQ")
	}
	if err := rabbitmq.DeclareExchange(ch); err != nil {
		log.Fatal().Err(err).Msg("Falha ao declarar Exchange")
	}
	log.Info().Msg("✅ Conectado ao RabbitMQ!")

	return rabbitmq.NewRabbitMQPublisher(ch), func() {
		_ = ch.Close()
		_ = rabbitConn.Close()
	}
}
