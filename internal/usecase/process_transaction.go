package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProcessTransactionInput carrega quem pede, sobre qual carteira, e a intenção.
// Usamos DTOs (Data Transfer Objects) para não acoplar a API HTTP ao UseCase.
type ProcessTransactionInput struct {
	RequesterID int64
	WalletID    int64
	Intent      domain.Intent
}

// ProcessTransactionOutput define o que devolvemos para quem chamou.
type ProcessTransactionOutput struct {
	TransactionID string
	Type          domain.TransactionType
	Amount        decimal.Decimal
	Currency      domain.Currency
	Balance       decimal.Decimal // saldo da carteira do solicitante após o commit
	CreatedAt     time.Time
}

// ProcessTransactionUseCase é o núcleo: autoriza, converte, movimenta e registra.
type ProcessTransactionUseCase struct {
	walletRepository      gateway.WalletRepository
	userRepository        gateway.UserRepository
	transactionRepository gateway.TransactionRepository
	transactionManager    gateway.TransactionManager // Nosso "Unit of Work"
	converter             gateway.CurrencyConverter
	eventPublisher        gateway.EventPublisher
	metrics               gateway.MetricsRecorder
	now                   func() time.Time
}

// NewProcessTransaction cria uma nova instância do UseCase.
// publisher e metrics são opcionais.
func NewProcessTransaction(
	walletRepo gateway.WalletRepository,
	userRepo gateway.UserRepository,
	transactionRepo gateway.TransactionRepository,
	txManager gateway.TransactionManager,
	converter gateway.CurrencyConverter,
	publisher gateway.EventPublisher,
	metrics gateway.MetricsRecorder,
) *ProcessTransactionUseCase {
	if metrics == nil {
		metrics = gateway.NoopMetrics{}
	}
	return &ProcessTransactionUseCase{
		walletRepository:      walletRepo,
		userRepository:        userRepo,
		transactionRepository: transactionRepo,
		transactionManager:    txManager,
		converter:             converter,
		eventPublisher:        publisher,
		metrics:               metrics,
		now:                   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// repositórios ligados à transação corrente
type txRepositories struct {
	wallets gateway.WalletRepository
	users   gateway.UserRepository
	ledger  gateway.TransactionRepository
}

type processResult struct {
	transaction *domain.Transaction
	balance     decimal.Decimal
}

// Execute roda a lógica de negócio inteira dentro de uma única unidade de trabalho.
func (u *ProcessTransactionUseCase) Execute(ctx context.Context, input ProcessTransactionInput) (*ProcessTransactionOutput, error) {
	started := time.Now()
	txType := "unknown"
	if input.Intent != nil {
		txType = string(input.Intent.Type())
	}

	var result processResult

	// Se a função anônima retornar erro, o UoW faz ROLLBACK; se retornar nil, COMMIT.
	err := u.transactionManager.Run(ctx, func(contextWithTx context.Context) error {
		transactionObject, ok := gateway.TransactionFromContext(contextWithTx)
		if !ok {
			return fmt.Errorf("erro crítico: transação não encontrada no contexto")
		}

		repos := txRepositories{
			wallets: u.walletRepository.WithTx(transactionObject),
			users:   u.userRepository.WithTx(transactionObject),
			ledger:  u.transactionRepository.WithTx(transactionObject),
		}

		var err error
		switch intent := input.Intent.(type) {
		case domain.Deposit, domain.Withdrawal:
			result, err = u.processIntra(contextWithTx, repos, input, intent)
		case domain.Transfer:
			result, err = u.processTransfer(contextWithTx, repos, input, intent)
		default:
			err = domain.ErrInvalidTransactionType
		}
		return err
	})

	u.metrics.RecordTransaction(txType, outcomeLabel(err), time.Since(started))
	if err != nil {
		return nil, err
	}

	u.publish(ctx, result.transaction)

	return &ProcessTransactionOutput{
		TransactionID: result.transaction.ID,
		Type:          result.transaction.Type,
		Amount:        result.transaction.Amount,
		Currency:      result.transaction.Currency,
		Balance:       result.balance,
		CreatedAt:     result.transaction.CreatedAt,
	}, nil
}

// processIntra trata DEPOSIT e WITHDRAWAL sobre uma única carteira.
func (u *ProcessTransactionUseCase) processIntra(ctx context.Context, repos txRepositories, input ProcessTransactionInput, intent domain.Intent) (processResult, error) {
	wallet, err := repos.wallets.GetByIDForUpdate(ctx, input.WalletID)
	if err != nil {
		return processResult{}, wrapLookup(err, "falha ao travar carteira %d", input.WalletID)
	}

	converted, err := u.authorizeAndConvert(ctx, repos.users, wallet, input.RequesterID, intent)
	if err != nil {
		return processResult{}, err
	}

	if intent.Type() == domain.TransactionDeposit {
		err = wallet.Deposit(converted)
	} else {
		err = wallet.Withdraw(converted)
	}
	if err != nil {
		return processResult{}, err
	}

	if err := repos.wallets.Save(ctx, wallet); err != nil {
		return processResult{}, fmt.Errorf("falha ao salvar carteira %d: %w", wallet.ID, err)
	}

	record := domain.NewIntraTransaction(intent.Type(), wallet, converted, u.now())
	if err := repos.ledger.Create(ctx, record); err != nil {
		return processResult{}, fmt.Errorf("falha ao salvar histórico da transação: %w", err)
	}

	return processResult{transaction: record, balance: wallet.Balance}, nil
}

// processTransfer debita o remetente e credita o destinatário na mesma transação.
func (u *ProcessTransactionUseCase) processTransfer(ctx context.Context, repos txRepositories, input ProcessTransactionInput, intent domain.Transfer) (processResult, error) {
	// A falha de resolução só é reportada depois do débito: saldo insuficiente tem precedência.
	recipientWalletID, resolveErr := u.resolveRecipientWallet(ctx, repos, intent)

	// Ordenação de IDs para evitar Deadlock (Lock Pessimista)
	// Se a Transferência A->B e B->A acontecerem ao mesmo tempo,
	// ordenamos para que ambas travem sempre o ID menor primeiro.
	locked, err := lockWallets(ctx, repos.wallets, input.WalletID, recipientWalletID)
	if err != nil {
		return processResult{}, err
	}

	sender, ok := locked[input.WalletID]
	if !ok {
		return processResult{}, fmt.Errorf("carteira de origem %d: %w", input.WalletID, domain.ErrWalletNotFound)
	}

	debited, err := u.authorizeAndConvert(ctx, repos.users, sender, input.RequesterID, intent)
	if err != nil {
		return processResult{}, err
	}

	// Só depois de carteira, dono e autorização validados
	if resolveErr == nil && recipientWalletID == sender.ID {
		return processResult{}, domain.ErrSelfTransfer
	}

	// Operação de Débito (Quem envia). Falha aqui aborta antes de tocar no destinatário.
	if err := sender.Withdraw(debited); err != nil {
		return processResult{}, err
	}

	if resolveErr != nil {
		return processResult{}, resolveErr
	}
	recipient, ok := locked[recipientWalletID]
	if !ok {
		return processResult{}, fmt.Errorf("carteira do destinatário %d: %w", recipientWalletID, domain.ErrWalletNotFound)
	}

	recipientOwner, err := repos.users.GetByWallet(ctx, recipient)
	if err != nil {
		return processResult{}, wrapLookup(err, "dono da carteira %d", recipient.ID)
	}

	// Segunda conversão: do valor debitado (moeda do remetente) para a moeda do destinatário.
	credited, err := u.converter.Convert(ctx, debited, sender.Currency, recipient.Currency)
	if err != nil {
		return processResult{}, fmt.Errorf("falha na conversão %s->%s: %w", sender.Currency, recipient.Currency, err)
	}

	// Operação de Crédito (Quem recebe)
	if err := recipient.Deposit(credited); err != nil {
		return processResult{}, err
	}

	if err := repos.wallets.Save(ctx, sender); err != nil {
		return processResult{}, fmt.Errorf("falha ao salvar carteira %d: %w", sender.ID, err)
	}
	if err := repos.wallets.Save(ctx, recipient); err != nil {
		return processResult{}, fmt.Errorf("falha ao salvar carteira %d: %w", recipient.ID, err)
	}

	// Registrar o Histórico: um único registro para as duas pernas
	record := domain.NewTransferTransaction(sender, recipient, debited, credited, u.now())
	record.RecipientID = recipientOwner.ID
	if err := repos.ledger.Create(ctx, record); err != nil {
		return processResult{}, fmt.Errorf("falha ao salvar histórico da transação: %w", err)
	}

	return processResult{transaction: record, balance: sender.Balance}, nil
}

// authorizeAndConvert é o prefixo comum: dono, autorização e conversão para a moeda da carteira.
func (u *ProcessTransactionUseCase) authorizeAndConvert(ctx context.Context, users gateway.UserRepository, wallet *domain.Wallet, requesterID int64, intent domain.Intent) (decimal.Decimal, error) {
	if err := authorize(ctx, users, wallet, requesterID); err != nil {
		return decimal.Zero, err
	}

	amount, currency := intent.Money()
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	converted, err := u.converter.Convert(ctx, amount, currency, wallet.Currency)
	if err != nil {
		return decimal.Zero, fmt.Errorf("falha na conversão %s->%s: %w", currency, wallet.Currency, err)
	}
	return converted, nil
}

// resolveRecipientWallet aplica o endereçamento canônico (carteira) ou o alternativo (usuário).
func (u *ProcessTransactionUseCase) resolveRecipientWallet(ctx context.Context, repos txRepositories, intent domain.Transfer) (int64, error) {
	if intent.RecipientWalletID != 0 {
		return intent.RecipientWalletID, nil
	}
	if intent.RecipientUserID == 0 {
		return 0, fmt.Errorf("destinatário não informado: %w", domain.ErrWalletNotFound)
	}

	if _, err := repos.users.GetByID(ctx, intent.RecipientUserID); err != nil {
		return 0, wrapLookup(err, "destinatário %d", intent.RecipientUserID)
	}
	wallet, err := repos.wallets.GetByOwnerID(ctx, intent.RecipientUserID)
	if err != nil {
		return 0, wrapLookup(err, "carteira do destinatário %d", intent.RecipientUserID)
	}
	return wallet.ID, nil
}

func (u *ProcessTransactionUseCase) publish(ctx context.Context, transaction *domain.Transaction) {
	if u.eventPublisher == nil {
		return
	}
	event := domain.NewTransactionEvent(transaction)
	if err := u.eventPublisher.Publish(ctx, domain.LedgerExchange, domain.TransactionCreatedRouting, event); err != nil {
		// Apenas logamos o erro, não falhamos a request HTTP
		log.Error().Err(err).Str("transaction_id", transaction.ID).Msg("Falha ao publicar evento")
	}
}

// authorize é a checagem de posse compartilhada com as consultas.
func authorize(ctx context.Context, users gateway.UserRepository, wallet *domain.Wallet, requesterID int64) error {
	requester, err := users.GetByID(ctx, requesterID)
	if err != nil {
		return wrapLookup(err, "solicitante %d", requesterID)
	}
	if !wallet.OwnedBy(requester) {
		return domain.ErrUnauthorizedAccess
	}
	return nil
}

// lockWallets trava as carteiras em ordem crescente de id.
// Carteiras inexistentes ficam fora do mapa; quem chama decide o erro.
func lockWallets(ctx context.Context, wallets gateway.WalletRepository, ids ...int64) (map[int64]*domain.Wallet, error) {
	ordered := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != 0 {
			ordered = append(ordered, id)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	locked := make(map[int64]*domain.Wallet, len(ordered))
	for _, id := range ordered {
		if _, done := locked[id]; done {
			continue
		}
		wallet, err := wallets.GetByIDForUpdate(ctx, id)
		if errors.Is(err, domain.ErrWalletNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("falha ao travar carteira %d: %w", id, err)
		}
		locked[id] = wallet
	}
	return locked, nil
}

// wrapLookup preserva erros de domínio e adiciona contexto aos de infraestrutura.
func wrapLookup(err error, format string, args ...interface{}) error {
	if errors.Is(err, domain.ErrWalletNotFound) || errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrWalletNotFound):
		return "wallet_not_found"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return "invalid_type"
	case errors.Is(err, domain.ErrSelfTransfer):
		return "self_transfer"
	default:
		return "error"
	}
}
