package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-LedgerFlow-Wallet/internal/domain"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// AuditLog representa o documento que será salvo no Mongo.
// Usamos tags 'bson' em vez de 'json'.
type AuditLog struct {
	TransactionID     string    `bson:"_id"` // o id da transação vira a chave: reentrega não duplica
	Type              string    `bson:"type"`
	Amount            string    `bson:"amount"` // decimal como texto, sem perda de precisão
	Currency          string    `bson:"currency"`
	OwnerID           int64     `bson:"owner_id,omitempty"`
	SenderID          int64     `bson:"sender_id,omitempty"`
	RecipientID       int64     `bson:"recipient_id,omitempty"`
	WalletID          int64     `bson:"wallet_id"`
	RecipientWalletID int64     `bson:"recipient_wallet_id,omitempty"`
	Status            string    `bson:"status"`
	CreatedAt         time.Time `bson:"created_at"`
	ProcessedAt       time.Time `bson:"processed_at"`
}

// NewAuditLog converte o evento recebido da fila
func NewAuditLog(event domain.TransactionEvent) AuditLog {
	return AuditLog{
		TransactionID:     event.TransactionID,
		Type:              string(event.Type),
		Amount:            event.Amount.String(),
		Currency:          event.Currency.String(),
		OwnerID:           event.OwnerID,
		SenderID:          event.SenderID,
		RecipientID:       event.RecipientID,
		WalletID:          event.WalletID,
		RecipientWalletID: event.RecipientWalletID,
		Status:            event.Status,
		CreatedAt:         event.CreatedAt,
	}
}

type AuditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	// Cria/Obtém a collection "audit_logs"
	collection := client.Database(dbName).Collection("audit_logs")
	return &AuditRepository{collection: collection}
}

// Save grava o log. Se a transação já foi auditada (reentrega), não é erro.
func (r *AuditRepository) Save(ctx context.Context, log AuditLog) error {
	log.ProcessedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

// Handle adapta o repositório ao consumidor da fila.
func (r *AuditRepository) Handle(ctx context.Context, event domain.TransactionEvent) error {
	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.Save(saveCtx, NewAuditLog(event))
}
