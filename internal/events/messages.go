package events

import (
	"encoding/json"
	"time"
)

// Event kinds published on the ledger stream.
const (
	KindCreated = "created"
	KindDeleted = "deleted"
)

// Collections the stream reports on.
const (
	CollectionTransactions = "transactions"
	CollectionBudgets      = "budgets"
)

// LedgerEvent is a lightweight lifecycle notification. It carries only
// identifiers; consumers needing the full record fetch it themselves.
type LedgerEvent struct {
	Kind       string    `json:"kind"`
	Collection string    `json:"collection"`
	RecordID   string    `json:"recordId"`
	OwnerID    string    `json:"ownerId"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewLedgerEvent(kind, collection, recordID, ownerID string) *LedgerEvent {
	return &LedgerEvent{
		Kind:       kind,
		Collection: collection,
		RecordID:   recordID,
		OwnerID:    ownerID,
		Timestamp:  time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
