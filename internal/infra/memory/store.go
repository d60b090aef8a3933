// Package memory guarda usuários, carteiras e o livro-razão em processo.
// Serve para desenvolvimento local (STORAGE=memory) e para os testes dos usecases.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
)

// Store é o "banco" em memória. Toda escrita feita dentro de um Tx só aparece aqui no commit.
type Store struct {
	mu           sync.RWMutex
	users        map[int64]domain.User
	wallets      map[int64]domain.Wallet
	transactions []domain.Transaction
	walletLocks  map[int64]chan struct{}
	lastUserID   int64
	lastWalletID int64
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:       make(map[int64]domain.User),
		wallets:     make(map[int64]domain.Wallet),
		walletLocks: make(map[int64]chan struct{}),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) nextUserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUserID++
	return s.lastUserID
}

func (s *Store) nextWalletID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastWalletID++
	return s.lastWalletID
}

// lockChan devolve o semáforo (capacidade 1) da carteira.
func (s *Store) lockChan(walletID int64) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.walletLocks[walletID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.walletLocks[walletID] = ch
	}
	return ch
}

func (s *Store) wallet(id int64) (domain.Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	return w, ok
}

func (s *Store) user(id int64) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) userByName(username string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Store) walletsByOwner(ownerID int64) []domain.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Wallet
	for _, w := range s.wallets {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	return out
}

func (s *Store) filterTransactions(match func(domain.Transaction) bool) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range s.transactions {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Tx é a unidade de trabalho em memória: escritas ficam em stage até o commit,
// e as carteiras travadas continuam travadas até commit ou rollback.
type Tx struct {
	store        *Store
	users        map[int64]domain.User
	wallets      map[int64]domain.Wallet
	transactions []domain.Transaction
	held         map[int64]chan struct{}
}

func (s *Store) begin() *Tx {
	return &Tx{
		store:   s,
		users:   make(map[int64]domain.User),
		wallets: make(map[int64]domain.Wallet),
		held:    make(map[int64]chan struct{}),
	}
}

// lockWallet bloqueia até obter a carteira ou o contexto expirar.
func (tx *Tx) lockWallet(ctx context.Context, walletID int64) error {
	if _, ok := tx.held[walletID]; ok {
		return nil
	}
	ch := tx.store.lockChan(walletID)
	select {
	case ch <- struct{}{}:
		tx.held[walletID] = ch
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (tx *Tx) wallet(id int64) (domain.Wallet, bool) {
	if w, ok := tx.wallets[id]; ok {
		return w, true
	}
	return tx.store.wallet(id)
}

func (tx *Tx) user(id int64) (domain.User, bool) {
	if u, ok := tx.users[id]; ok {
		return u, true
	}
	return tx.store.user(id)
}

func (tx *Tx) userByName(username string) (domain.User, bool) {
	for _, u := range tx.users {
		if u.Username == username {
			return u, true
		}
	}
	return tx.store.userByName(username)
}

func (tx *Tx) walletsByOwner(ownerID int64) []domain.Wallet {
	byID := make(map[int64]domain.Wallet)
	for _, w := range tx.store.walletsByOwner(ownerID) {
		byID[w.ID] = w
	}
	for id, w := range tx.wallets {
		if w.OwnerID == ownerID {
			byID[id] = w
		}
	}
	out := make([]domain.Wallet, 0, len(byID))
	for _, w := range byID {
		out = append(out, w)
	}
	return out
}

// commit aplica o stage de uma vez só, sob o lock do Store.
func (tx *Tx) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range tx.users {
		for otherID, other := range s.users {
			if otherID != id && other.Username == u.Username {
				return domain.ErrUserAlreadyExists
			}
		}
	}

	for id, u := range tx.users {
		s.users[id] = u
	}
	for id, w := range tx.wallets {
		s.wallets[id] = w
	}
	s.transactions = append(s.transactions, tx.transactions...)
	return nil
}

// release devolve os locks. Sem commit, o stage é simplesmente descartado (rollback).
func (tx *Tx) release() {
	for id, ch := range tx.held {
		<-ch
		delete(tx.held, id)
	}
}

func sortWallets(ws []domain.Wallet) {
	sort.Slice(ws, func(i, j int) bool { return ws[i].ID < ws[j].ID })
}
