package memory

import (
	"context"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/google/uuid"
)

// TransactionRepository é o livro-razão em memória (append-only).
type TransactionRepository struct {
	store *Store
	tx    *Tx
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = r.store.now()
	}

	if r.tx != nil {
		r.tx.transactions = append(r.tx.transactions, *transaction)
		return nil
	}
	r.store.mu.Lock()
	r.store.transactions = append(r.store.transactions, *transaction)
	r.store.mu.Unlock()
	return nil
}

func (r *TransactionRepository) FindByOwnerID(ctx context.Context, ownerID int64, txType *domain.TransactionType) ([]*domain.Transaction, error) {
	return r.find(func(t domain.Transaction) bool {
		if t.Type.IsInter() || t.OwnerID != ownerID {
			return false
		}
		return txType == nil || t.Type == *txType
	}), nil
}

func (r *TransactionRepository) FindBySenderID(ctx context.Context, senderID int64) ([]*domain.Transaction, error) {
	return r.find(func(t domain.Transaction) bool {
		return t.Type.IsInter() && t.SenderID == senderID
	}), nil
}

func (r *TransactionRepository) FindByRecipientID(ctx context.Context, recipientID int64) ([]*domain.Transaction, error) {
	return r.find(func(t domain.Transaction) bool {
		return t.Type.IsInter() && t.RecipientID == recipientID
	}), nil
}

func (r *TransactionRepository) WithTx(tx gateway.TransactionObject) gateway.TransactionRepository {
	memTx, ok := tx.(*Tx)
	if !ok {
		return r
	}
	return &TransactionRepository{store: r.store, tx: memTx}
}

// find devolve cópias na ordem de inserção, incluindo o que está em stage no Tx.
func (r *TransactionRepository) find(match func(domain.Transaction) bool) []*domain.Transaction {
	found := r.store.filterTransactions(match)
	if r.tx != nil {
		for _, t := range r.tx.transactions {
			if match(t) {
				found = append(found, t)
			}
		}
	}
	out := make([]*domain.Transaction, 0, len(found))
	for i := range found {
		out = append(out, &found[i])
	}
	return out
}
