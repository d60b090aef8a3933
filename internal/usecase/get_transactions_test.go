package usecase

import (
	"context"
	"testing"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTransactions_EmptyHistory(t *testing.T) {
	f := newFixture(t)
	alice := f.newUser(t, "alice")
	wallet := f.newWallet(t, alice, domain.INR, "0")

	views, err := f.history.Execute(context.Background(), GetTransactionsInput{OwnerID: alice.ID, WalletID: wallet.ID})
	assert.ErrorIs(t, err, domain.ErrNoTransactionsFound)
	assert.Nil(t, views)
}

func TestGetTransactions_NewestFirstAndFilters(t *testing.T) {
	f := newFixture(t)
	alice := f.newUser(t, "alice")
	bob := f.newUser(t, "bob")
	aliceWallet := f.newWallet(t, alice, domain.INR, "0")
	bobWallet := f.newWallet(t, bob, domain.INR, "100")
	ctx := context.Background()

	_, err := f.run(ctx, alice, aliceWallet, domain.Deposit{Amount: money("500"), Currency: domain.INR})
	require.NoError(t, err)
	_, err = f.run(ctx, alice, aliceWallet, domain.Withdrawal{Amount: money("50"), Currency: domain.INR})
	require.NoError(t, err)
	_, err = f.run(ctx, bob, bobWallet, domain.Transfer{Amount: money("25"), Currency: domain.INR, RecipientWalletID: aliceWallet.ID})
	require.NoError(t, err)
	_, err = f.run(ctx, alice, aliceWallet, domain.Transfer{Amount: money("10"), Currency: domain.INR, RecipientWalletID: bobWallet.ID})
	require.NoError(t, err)

	all, err := f.history.Execute(ctx, GetTransactionsInput{OwnerID: alice.ID, WalletID: aliceWallet.ID})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, domain.TransactionTransfer, all[0].Type)
	assert.Equal(t, alice.ID, all[0].SenderID)
	assert.Equal(t, domain.TransactionTransfer, all[1].Type)
	assert.Equal(t, alice.ID, all[1].RecipientID)
	assert.Equal(t, domain.TransactionWithdrawal, all[2].Type)
	assert.Equal(t, domain.TransactionDeposit, all[3].Type)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt))
	}

	deposits := domain.TransactionDeposit
	onlyDeposits, err := f.history.Execute(ctx, GetTransactionsInput{OwnerID: alice.ID, WalletID: aliceWallet.ID, Type: &deposits})
	require.NoError(t, err)
	require.Len(t, onlyDeposits, 1)
	assert.Equal(t, "500.00", onlyDeposits[0].Amount.StringFixed(2))

	transfers := domain.TransactionTransfer
	onlyTransfers, err := f.history.Execute(ctx, GetTransactionsInput{OwnerID: bob.ID, WalletID: bobWallet.ID, Type: &transfers})
	require.NoError(t, err)
	assert.Len(t, onlyTransfers, 2)

	withdrawals := domain.TransactionWithdrawal
	_, err = f.history.Execute(ctx, GetTransactionsInput{OwnerID: bob.ID, WalletID: bobWallet.ID, Type: &withdrawals})
	assert.ErrorIs(t, err, domain.ErrNoTransactionsFound)
}

func TestGetTransactions_TransferBetweenOwnWalletsAppearsOnce(t *testing.T) {
	f := newFixture(t)
	alice := f.newUser(t, "alice")
	inr := f.newWallet(t, alice, domain.INR, "1000")
	usd := f.newWallet(t, alice, domain.USD, "0")

	_, err := f.run(context.Background(), alice, inr, domain.Transfer{Amount: money("830"), Currency: domain.INR, RecipientWalletID: usd.ID})
	require.NoError(t, err)
	assert.Equal(t, "10.00", f.balance(t, usd.ID))

	views, err := f.history.Execute(context.Background(), GetTransactionsInput{OwnerID: alice.ID, WalletID: inr.ID})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestGetTransactions_Authorization(t *testing.T) {
	f := newFixture(t)
	alice := f.newUser(t, "alice")
	mallory := f.newUser(t, "mallory")
	wallet := f.newWallet(t, alice, domain.INR, "0")

	_, err := f.history.Execute(context.Background(), GetTransactionsInput{OwnerID: mallory.ID, WalletID: wallet.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	_, err = f.history.Execute(context.Background(), GetTransactionsInput{OwnerID: alice.ID, WalletID: 999})
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)

	// A checagem é idempotente: repetir não muda o resultado
	_, err = f.history.Execute(context.Background(), GetTransactionsInput{OwnerID: mallory.ID, WalletID: wallet.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}
