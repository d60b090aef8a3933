package domain

import "errors"

var (
	ErrWalletNotFound         = errors.New("wallet not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrUnauthorizedAccess     = errors.New("unauthorized access to wallet")
	ErrInvalidAmount          = errors.New("transaction amount must be greater than zero")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNoTransactionsFound    = errors.New("no transactions found")
	ErrUnsupportedCurrency    = errors.New("unsupported currency")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrInvalidUsername        = errors.New("username must not be empty")
	ErrSelfTransfer           = errors.New("cannot transfer to the same wallet")
)
