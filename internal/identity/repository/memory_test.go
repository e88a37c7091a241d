package repository

import (
	"context"
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestFindOHIDByContactDisjunctiveMatch(t *testing.T) {
	store := NewMemoryStore()
	err := store.InsertLeadContext(context.Background(), "ohid-1", "ingest-1", Lead{
		SourceSystem: SourceWeb,
		Channel:      ChannelWebForm,
		Person: Person{
			Email: strPtr("a@x.com"),
			Phone: strPtr("+971500000001"),
		},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	cases := []struct {
		name  string
		email *string
		phone *string
		want  string
		miss  bool
	}{
		{"by email", strPtr("a@x.com"), nil, "ohid-1", false},
		{"by phone", nil, strPtr("+971500000001"), "ohid-1", false},
		{"email matches, phone differs", strPtr("a@x.com"), strPtr("+0"), "ohid-1", false},
		{"no match", strPtr("b@x.com"), strPtr("+0"), "", true},
		{"both nil", nil, nil, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.FindOHIDByContact(context.Background(), tc.email, tc.phone)
			if tc.miss {
				if !errors.Is(err, ErrNoContactMatch) {
					t.Fatalf("expected ErrNoContactMatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestOldestLeadWinsIdentity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.InsertLeadContext(ctx, "ohid-old", "ingest-1", Lead{
		Person: Person{Email: strPtr("a@x.com")},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.InsertLeadContext(ctx, "ohid-new", "ingest-2", Lead{
		Person: Person{Email: strPtr("a@x.com")},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := store.FindOHIDByContact(ctx, strPtr("a@x.com"), nil)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != "ohid-old" {
		t.Fatalf("expected first-writer identity ohid-old, got %q", got)
	}
}

func TestInsertWorkflowEventAppends(t *testing.T) {
	store := NewMemoryStore()
	ohid := "ohid-1"

	err := store.InsertWorkflowEvent(context.Background(), "evt-1", &ohid, "LeadIngested", map[string]any{"k": "v"}, SourceWeb)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	err = store.InsertWorkflowEvent(context.Background(), "evt-2", nil, "CallReceived", nil, SourceTwilio)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}

	events := store.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventID != "evt-1" || events[0].OHID == nil || *events[0].OHID != "ohid-1" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].OHID != nil {
		t.Fatalf("expected nil identity on raw telephony event")
	}
}
