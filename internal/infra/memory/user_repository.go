package memory

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
)

type UserRepository struct {
	store *Store
	tx    *Tx
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := r.byName(user.Username); exists {
		return domain.ErrUserAlreadyExists
	}
	user.ID = r.store.nextUserID()
	user.CreatedAt = r.store.now()

	if r.tx != nil {
		r.tx.users[user.ID] = *user
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, other := range r.store.users {
		if other.Username == user.Username {
			return domain.ErrUserAlreadyExists
		}
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var (
		u  domain.User
		ok bool
	)
	if r.tx != nil {
		u, ok = r.tx.user(id)
	} else {
		u, ok = r.store.user(id)
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := r.byName(username)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByWallet(ctx context.Context, wallet *domain.Wallet) (*domain.User, error) {
	return r.GetByID(ctx, wallet.OwnerID)
}

func (r *UserRepository) WithTx(tx gateway.TransactionObject) gateway.UserRepository {
	memTx, ok := tx.(*Tx)
	if !ok {
		return r
	}
	return &UserRepository{store: r.store, tx: memTx}
}

func (r *UserRepository) byName(username string) (domain.User, bool) {
	if r.tx != nil {
		return r.tx.userByName(username)
	}
	return r.store.userByName(username)
}
