package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAcknowledger struct {
	mock.Mock
}

func (m *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	return m.Called(tag, multiple).Error(0)
}

func (m *MockAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	return m.Called(tag, multiple, requeue).Error(0)
}

func (m *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	return m.Called(tag, requeue).Error(0)
}

func eventBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(domain.TransactionEvent{
		TransactionID: "tx-1",
		Type:          domain.TransactionDeposit,
		Amount:        decimal.RequireFromString("8300"),
		Currency:      domain.INR,
		OwnerID:       1,
		WalletID:      1,
		Status:        "completed",
	})
	require.NoError(t, err)
	return body
}

func TestConsumer_Deliver(t *testing.T) {
	tests := []struct {
		name        string
		body        func(t *testing.T) []byte
		redelivered bool
		handlerErr  error
		expect      func(ack *MockAcknowledger)
		wantHandled bool
	}{
		{
			name: "sucesso faz ack",
			body: eventBody,
			expect: func(ack *MockAcknowledger) {
				ack.On("Ack", uint64(7), false).Return(nil).Once()
			},
			wantHandled: true,
		},
		{
			name: "json inválido é descartado",
			body: func(*testing.T) []byte { return []byte("{oops") },
			expect: func(ack *MockAcknowledger) {
				ack.On("Nack", uint64(7), false, false).Return(nil).Once()
			},
		},
		{
			name:       "falha na primeira entrega volta para a fila",
			body:       eventBody,
			handlerErr: errors.New("mongo down"),
			expect: func(ack *MockAcknowledger) {
				ack.On("Nack", uint64(7), false, true).Return(nil).Once()
			},
			wantHandled: true,
		},
		{
			name:        "falha em reentrega é descartada",
			body:        eventBody,
			redelivered: true,
			handlerErr:  errors.New("mongo down"),
			expect: func(ack *MockAcknowledger) {
				ack.On("Nack", uint64(7), false, false).Return(nil).Once()
			},
			wantHandled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := new(MockAcknowledger)
			tt.expect(ack)

			handled := false
			handle := func(_ context.Context, event domain.TransactionEvent) error {
				handled = true
				assert.Equal(t, "tx-1", event.TransactionID)
				assert.Equal(t, "8300", event.Amount.String())
				return tt.handlerErr
			}

			c := NewConsumer(nil, "audit_queue", "test")
			c.deliver(context.Background(), amqp.Delivery{
				Acknowledger: ack,
				DeliveryTag:  7,
				Redelivered:  tt.redelivered,
				Body:         tt.body(t),
			}, handle)

			assert.Equal(t, tt.wantHandled, handled)
			ack.AssertExpectations(t)
		})
	}
}
