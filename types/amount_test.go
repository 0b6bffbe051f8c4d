package types

import "testing"

func TestAmountAdd(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Amount
		want   Amount
		wantOK bool
	}{
		{"Simple", 100, 200, 300, true},
		{"Zero", 0, 0, 0, true},
		{"ToMax", MaxAmount - 1, 1, MaxAmount, true},
		{"Overflow", MaxAmount, 1, 0, false},
		{"OverflowBig", MaxAmount, MaxAmount, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Add(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAmountSub(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Amount
		want   Amount
		wantOK bool
	}{
		{"Simple", 300, 200, 100, true},
		{"ToZero", 200, 200, 0, true},
		{"Underflow", 100, 200, 0, false},
		{"FromZero", 0, 1, 0, false},
		{"Max", MaxAmount, MaxAmount, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Sub(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScaleBps(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		rate   BasisPoints
		want   Amount
	}{
		{"FivePercent", 200, 500, 10},
		{"TruncatesDown", 199, 500, 9},       // 199*500/10000 = 9.95
		{"SubUnit", 1, 500, 0},               // floors to zero
		{"ZeroRate", 1_000_000, 0, 0},
		{"FullRate", 12345, 10_000, 12345},
		{"TenPercent", 1000, 1000, 100},
		{"OneBp", 10_000, 1, 1},
		{"OneBpTruncated", 9_999, 1, 0},
		{"LargeAmount", MaxAmount, 10_000, MaxAmount}, // 128-bit intermediate, no overflow
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.amount.ScaleBps(tt.rate)
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScaleBpsConservation(t *testing.T) {
	// principal + fee must reconstruct the gross amount exactly for any
	// rate and amount: the engine's fee split depends on it.
	amounts := []Amount{0, 1, 3, 199, 200, 10_000, 123_456_789, MaxAmount}
	rates := []BasisPoints{0, 1, 250, 500, 1000, 9_999, 10_000}

	for _, a := range amounts {
		for _, r := range rates {
			fee := a.ScaleBps(r)
			principal, ok := a.Sub(fee)
			if !ok {
				t.Fatalf("fee %d exceeds amount %d at rate %d", fee, a, r)
			}
			if sum, ok := principal.Add(fee); !ok || sum != a {
				t.Errorf("rate %d: %d + %d != %d", r, principal, fee, a)
			}
		}
	}
}

func TestScaleBpsRejectsOverUnityRate(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for rate above 10000 bps")
		}
	}()

	_ = Amount(100).ScaleBps(10_001)
}

func TestAmountFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   Amount
		decimals int
		want     string
	}{
		{"WholeUnit", 1_000_000, 6, "1.000000"},
		{"Fraction", 2_500, 6, "0.002500"},
		{"NoDecimals", 42, 0, "42"},
		{"TwoDecimals", 4900, 2, "49.00"},
		{"Zero", 0, 6, "0.000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.Format(tt.decimals); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{"Simple", "12345", 12345, false},
		{"Zero", "0", 0, false},
		{"Whitespace", "  77  ", 77, false},
		{"Max", "18446744073709551615", MaxAmount, false},
		{"Empty", "", 0, true},
		{"Negative", "-1", 0, true},
		{"NotANumber", "ten", 0, true},
		{"TooLarge", "18446744073709551616", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSumAmounts(t *testing.T) {
	if got, ok := SumAmounts(1, 2, 3); !ok || got != 6 {
		t.Errorf("got %d/%v, want 6/true", got, ok)
	}
	if _, ok := SumAmounts(MaxAmount, 1); ok {
		t.Error("expected overflow")
	}
	if got, ok := SumAmounts(); !ok || got != 0 {
		t.Errorf("empty sum: got %d/%v, want 0/true", got, ok)
	}
}
