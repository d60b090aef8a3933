package domain

import "github.com/shopspring/decimal"

// Intent é a intenção de transação: Deposit, Withdrawal ou Transfer.
// O método não exportado fecha o conjunto de variantes neste pacote.
type Intent interface {
	Type() TransactionType
	Money() (decimal.Decimal, Currency)
	isIntent()
}

type Deposit struct {
	Amount   decimal.Decimal
	Currency Currency
}

type Withdrawal struct {
	Amount   decimal.Decimal
	Currency Currency
}

// Transfer endereça o destinatário pela carteira (canônico) ou,
// quando RecipientWalletID é zero, pela carteira mais antiga de RecipientUserID.
type Transfer struct {
	Amount            decimal.Decimal
	Currency          Currency
	RecipientWalletID int64
	RecipientUserID   int64
}

func (Deposit) Type() TransactionType    { return TransactionDeposit }
func (Withdrawal) Type() TransactionType { return TransactionWithdrawal }
func (Transfer) Type() TransactionType   { return TransactionTransfer }

func (d Deposit) Money() (decimal.Decimal, Currency)    { return d.Amount, d.Currency }
func (w Withdrawal) Money() (decimal.Decimal, Currency) { return w.Amount, w.Currency }
func (t Transfer) Money() (decimal.Decimal, Currency)   { return t.Amount, t.Currency }

func (Deposit) isIntent()    {}
func (Withdrawal) isIntent() {}
func (Transfer) isIntent()   {}

// NewIntent monta a variante correspondente ao tipo informado pela API.
func NewIntent(txType TransactionType, amount decimal.Decimal, currency Currency, recipientWalletID, recipientUserID int64) (Intent, error) {
	switch txType {
	case TransactionDeposit:
		return Deposit{Amount: amount, Currency: currency}, nil
	case TransactionWithdrawal:
		return Withdrawal{Amount: amount, Currency: currency}, nil
	case TransactionTransfer:
		return Transfer{
			Amount:            amount,
			Currency:          currency,
			RecipientWalletID: recipientWalletID,
			RecipientUserID:   recipientUserID,
		}, nil
	}
	return nil, ErrInvalidTransactionType
}
