package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/gateway"
	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/infra/postgres/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE de violação de UNIQUE
const uniqueViolation = "23505"

type UserRepository struct {
	db      *pgxpool.Pool
	queries *db.Queries
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db:      pool,
		queries: db.New(pool),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row, err := r.queries.CreateUser(ctx, user.Username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	*user = *toDomainUser(row)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row, err := r.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row, err := r.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toDomainUser(row), nil
}

// GetByWallet resolve o dono pela FK owner_id da carteira
func (r *UserRepository) GetByWallet(ctx context.Context, wallet *domain.Wallet) (*domain.User, error) {
	return r.GetByID(ctx, wallet.OwnerID)
}

func (r *UserRepository) WithTx(tx gateway.TransactionObject) gateway.UserRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &UserRepository{
		db:      r.db,
		queries: r.queries.WithTx(pgTx),
	}
}
