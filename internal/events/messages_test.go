package events

import (
	"testing"
	"time"
)

func TestLedgerEventJSONRoundTrip(t *testing.T) {
	ev := NewLedgerEvent(KindCreated, CollectionTransactions, "t1", "u1")

	data, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := LedgerEventFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != KindCreated || got.Collection != CollectionTransactions ||
		got.RecordID != "t1" || got.OwnerID != "u1" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if got.Timestamp.IsZero() || time.Since(got.Timestamp) > time.Minute {
		t.Fatalf("timestamp not preserved: %v", got.Timestamp)
	}
}

func TestLedgerEventFromJSONInvalid(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
