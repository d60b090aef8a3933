package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTransactionDefaultsCreatedAt(t *testing.T) {
	// NULL explícito não aciona o DEFAULT da coluna; o insert precisa do COALESCE
	assert.Contains(t, createTransaction, "COALESCE($12::timestamptz, now())")
}
