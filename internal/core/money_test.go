package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1.00", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{" 2.50 ", "2.50", true},
		{"-1", "-1.00", true},
		{"0", "0.00", true},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q: expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParseMoneyLenient(t *testing.T) {
	if got := ParseMoneyLenient("garbage"); !got.IsZero() {
		t.Fatalf("malformed input should coerce to zero, got %s", got)
	}
	if got := ParseMoneyLenient("150"); !got.Equal(NewMoney(150)) {
		t.Fatalf("expected 150.00, got %s", got)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	if got := NewMoney(10000).MulPercent(NewMoney(5)); !got.Equal(NewMoney(500)) {
		t.Fatalf("10000 * 5%% = %s, want 500.00", got)
	}
	if got := NewMoney(500).MulInt(12); !got.Equal(NewMoney(6000)) {
		t.Fatalf("500 * 12 = %s, want 6000.00", got)
	}
	if got := NewMoney(100).Sub(NewMoney(250)); !got.IsNegative() {
		t.Fatalf("100 - 250 should be negative, got %s", got)
	}
	var zero Money
	if !zero.IsZero() || zero.String() != "0.00" {
		t.Fatalf("zero value unusable: %s", zero)
	}
}
