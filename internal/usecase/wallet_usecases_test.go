package usecase

import (
	"context"
	"testing"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWallet(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateWallet(f.wallets, f.users)
	alice := f.newUser(t, "alice")

	out, err := uc.Execute(context.Background(), CreateWalletInput{OwnerID: alice.ID, Currency: domain.EUR})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, domain.EUR, out.Currency)
	assert.True(t, out.Balance.IsZero())

	_, err = uc.Execute(context.Background(), CreateWalletInput{OwnerID: 999, Currency: domain.EUR})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetWallet(t *testing.T) {
	f := newFixture(t)
	uc := NewGetWallet(f.wallets, f.users)
	alice := f.newUser(t, "alice")
	bob := f.newUser(t, "bob")
	wallet := f.newWallet(t, alice, domain.USD, "12.5")

	out, err := uc.Execute(context.Background(), alice.ID, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.50", out.Balance.StringFixed(2))
	assert.Equal(t, domain.USD, out.Currency)

	_, err = uc.Execute(context.Background(), bob.ID, wallet.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	_, err = uc.Execute(context.Background(), alice.ID, 999)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestListWallets(t *testing.T) {
	f := newFixture(t)
	uc := NewListWallets(f.wallets, f.users)
	alice := f.newUser(t, "alice")
	first := f.newWallet(t, alice, domain.INR, "0")
	second := f.newWallet(t, alice, domain.EUR, "0")

	out, err := uc.Execute(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, first.ID, out[0].ID)
	assert.Equal(t, second.ID, out[1].ID)

	_, err = uc.Execute(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
