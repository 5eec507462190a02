package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID             string             `json:"id"`
	OwnerType      string             `json:"owner_type"`
	OwnerID        string             `json:"owner_id"`
	Number         string             `json:"number"`
	Name           string             `json:"name"`
	Classification string             `json:"classification"`
	Currency       string             `json:"currency"`
	Active         bool               `json:"active"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type Transaction struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Metadata    []byte             `json:"metadata"`
	EffectiveAt pgtype.Timestamptz `json:"effective_at"`
	RecordedAt  pgtype.Timestamptz `json:"recorded_at"`
	PostedAt    pgtype.Timestamptz `json:"posted_at"`
}

type Entry struct {
	ID            string             `json:"id"`
	TransactionID string             `json:"transaction_id"`
	AccountID     string             `json:"account_id"`
	Amount        pgtype.Numeric     `json:"amount"`
	Direction     string             `json:"direction"`
	Description   string             `json:"description"`
	EffectiveAt   pgtype.Timestamptz `json:"effective_at"`
	RecordedAt    pgtype.Timestamptz `json:"recorded_at"`
	Reverses      pgtype.Text        `json:"reverses"`
	Metadata      []byte             `json:"metadata"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	Published     bool               `json:"published"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
}
