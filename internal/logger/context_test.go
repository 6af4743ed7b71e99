package logger

import (
	"context"
	"testing"
)

func TestContextFieldRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		set  func(context.Context, string) context.Context
		get  func(context.Context) string
		val  string
	}{
		{"request id", SetRequestID, GetRequestID, "req-123"},
		{"imdb id", SetIMDBID, GetIMDBID, "tt9999901"},
		{"hash", SetHash, GetHash, "00000000000000000000000000000099999901aa"},
		{"component", SetComponent, GetComponent, "rejection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.set(context.Background(), tt.val)
			if got := tt.get(ctx); got != tt.val {
				t.Errorf("expected %q, got %q", tt.val, got)
			}
		})
	}
}

func TestContextFieldMissing(t *testing.T) {
	ctx := context.Background()
	if got := GetIMDBID(ctx); got != "" {
		t.Errorf("expected empty imdb_id on bare context, got %q", got)
	}
	if got := GetHash(ctx); got != "" {
		t.Errorf("expected empty hash on bare context, got %q", got)
	}
}

func TestContextFieldsAccumulate(t *testing.T) {
	ctx := SetIMDBID(context.Background(), "tt9999901")
	ctx = SetHash(ctx, "00000000000000000000000000000099999901aa")

	if GetIMDBID(ctx) != "tt9999901" {
		t.Error("expected imdb_id to survive later field injection")
	}
	if GetHash(ctx) != "00000000000000000000000000000099999901aa" {
		t.Error("expected hash alongside imdb_id")
	}
}
