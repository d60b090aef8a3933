package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/memory"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/rates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	args := m.Called(ctx, exchange, routingKey, body)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordTransaction(txType, outcome string, duration time.Duration) {
	m.Called(txType, outcome, duration)
}

type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// fixture monta os usecases sobre o armazenamento em memória
type fixture struct {
	store     *memory.Store
	wallets   *memory.WalletRepository
	users     *memory.UserRepository
	ledger    *memory.TransactionRepository
	uow       *memory.Uow
	publisher *MockPublisher
	process   *ProcessTransactionUseCase
	history   *GetTransactionsUseCase
	clock     atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		wallets:   memory.NewWalletRepository(store),
		users:     memory.NewUserRepository(store),
		ledger:    memory.NewTransactionRepository(store),
		uow:       memory.NewUow(store),
		publisher: new(MockPublisher),
	}
	f.process = NewProcessTransaction(f.wallets, f.users, f.ledger, f.uow, rates.NewStaticConverter(nil), f.publisher, nil)
	f.process.now = f.tick
	f.history = NewGetTransactions(f.wallets, f.users, f.ledger)

	f.publisher.On("Publish", mock.Anything, domain.LedgerExchange, domain.TransactionCreatedRouting, mock.AnythingOfType("domain.TransactionEvent")).
		Return(nil).Maybe()
	return f
}

// tick devolve um relógio que avança 1s por chamada, para ordenar o histórico
func (f *fixture) tick() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(f.clock.Add(1)) * time.Second)
}

func (f *fixture) newUser(t *testing.T, name string) *domain.User {
	t.Helper()
	user := &domain.User{Username: name}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) newWallet(t *testing.T, owner *domain.User, currency domain.Currency, balance string) *domain.Wallet {
	t.Helper()
	wallet := domain.NewWallet(owner.ID, currency)
	wallet.Balance = decimal.RequireFromString(balance)
	require.NoError(t, f.wallets.Create(context.Background(), wallet))
	return wallet
}

func (f *fixture) balance(t *testing.T, walletID int64) string {
	t.Helper()
	w, err := f.wallets.GetByID(context.Background(), walletID)
	require.NoError(t, err)
	return w.Balance.StringFixed(domain.MoneyScale)
}

func (f *fixture) run(ctx context.Context, requester *domain.User, wallet *domain.Wallet, intent domain.Intent) (*ProcessTransactionOutput, error) {
	return f.process.Execute(ctx, ProcessTransactionInput{
		RequesterID: requester.ID,
		WalletID:    wallet.ID,
		Intent:      intent,
	})
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
