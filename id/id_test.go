package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/coinage/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"AccountID", id.NewAccountID, "acct_"},
		{"AssetID", id.NewAssetID, "asset_"},
		{"EventID", id.NewEventID, "evt_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixAccount)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixAccount {
		t.Errorf("expected prefix %q, got %q", id.PrefixAccount, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"AccountID", id.NewAccountID, id.ParseAccountID},
		{"AssetID", id.NewAssetID, id.ParseAssetID},
		{"EventID", id.NewEventID, id.ParseEventID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseAccountID rejects asset_", id.NewAssetID().String(), id.ParseAccountID},
		{"ParseAssetID rejects evt_", id.NewEventID().String(), id.ParseAssetID},
		{"ParseEventID rejects acct_", id.NewAccountID().String(), id.ParseEventID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestNilIdentity(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Fatal("Nil must report IsNil")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", id.Nil.String())
	}
	if !id.Nil.Equal(id.Nil) {
		t.Error("two Nil IDs must be equal")
	}
	if id.Nil.Equal(id.NewAccountID()) {
		t.Error("Nil must not equal a real ID")
	}
}

func TestEqual(t *testing.T) {
	a := id.NewAccountID()
	b := id.NewAccountID()

	parsed, err := id.ParseAccountID(a.String())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !a.Equal(parsed) {
		t.Error("ID must equal its parsed copy")
	}
	if a.Equal(b) {
		t.Error("distinct IDs must not be equal")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestTextRoundTrip(t *testing.T) {
	original := id.NewAccountID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !original.Equal(decoded) {
		t.Errorf("text round-trip mismatch: %q != %q", original, decoded)
	}
}

func TestScanNil(t *testing.T) {
	var i id.ID
	if err := i.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if !i.IsNil() {
		t.Error("scanning NULL must produce the Nil ID")
	}
}
