package memory

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
)

// WalletRepository implementa gateway.WalletRepository em memória
type WalletRepository struct {
	store *Store
	tx    *Tx
}

func NewWalletRepository(store *Store) *WalletRepository {
	return &WalletRepository{store: store}
}

func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	now := r.store.now()
	wallet.ID = r.store.nextWalletID()
	wallet.Version = 1
	wallet.CreatedAt = now
	wallet.UpdatedAt = now
	r.put(*wallet)
	return nil
}

func (r *WalletRepository) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	w, ok := r.lookup(id)
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return &w, nil
}

// GetByIDForUpdate só trava dentro de um Tx, como o FOR UPDATE fora de BEGIN no Postgres.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Wallet, error) {
	if r.tx == nil {
		return r.GetByID(ctx, id)
	}
	if _, ok := r.lookup(id); !ok {
		return nil, domain.ErrWalletNotFound
	}
	if err := r.tx.lockWallet(ctx, id); err != nil {
		return nil, err
	}
	// Relê depois do lock: outro Tx pode ter comitado enquanto esperávamos
	return r.GetByID(ctx, id)
}

func (r *WalletRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Wallet, error) {
	wallets := r.byOwner(ownerID)
	if len(wallets) == 0 {
		return nil, domain.ErrWalletNotFound
	}
	return &wallets[0], nil
}

func (r *WalletRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Wallet, error) {
	wallets := r.byOwner(ownerID)
	out := make([]*domain.Wallet, 0, len(wallets))
	for i := range wallets {
		out = append(out, &wallets[i])
	}
	return out, nil
}

func (r *WalletRepository) Save(ctx context.Context, wallet *domain.Wallet) error {
	current, ok := r.lookup(wallet.ID)
	if !ok {
		return domain.ErrWalletNotFound
	}
	// Moeda e dono são imutáveis: só saldo e versão mudam
	current.Balance = wallet.Balance
	current.Version++
	current.UpdatedAt = r.store.now()
	r.put(current)

	wallet.Version = current.Version
	wallet.UpdatedAt = current.UpdatedAt
	return nil
}

func (r *WalletRepository) WithTx(tx gateway.TransactionObject) gateway.WalletRepository {
	memTx, ok := tx.(*Tx)
	if !ok {
		return r
	}
	return &WalletRepository{store: r.store, tx: memTx}
}

func (r *WalletRepository) lookup(id int64) (domain.Wallet, bool) {
	if r.tx != nil {
		return r.tx.wallet(id)
	}
	return r.store.wallet(id)
}

func (r *WalletRepository) byOwner(ownerID int64) []domain.Wallet {
	var wallets []domain.Wallet
	if r.tx != nil {
		wallets = r.tx.walletsByOwner(ownerID)
	} else {
		wallets = r.store.walletsByOwner(ownerID)
	}
	sortWallets(wallets)
	return wallets
}

func (r *WalletRepository) put(w domain.Wallet) {
	if r.tx != nil {
		r.tx.wallets[w.ID] = w
		return
	}
	r.store.mu.Lock()
	r.store.wallets[w.ID] = w
	r.store.mu.Unlock()
}
