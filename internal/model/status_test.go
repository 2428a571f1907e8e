package model

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want ContractStatus
		ok   bool
	}{
		{"0", StatusActive, true},
		{"1", StatusExpiringSoon, true},
		{"2", StatusExpired, true},
		{"Activo", StatusActive, true},
		{"Por vencer", StatusExpiringSoon, true},
		{"Vencido", StatusExpired, true},
		{"VENCIDO", StatusExpired, true},
		{"", StatusUnknown, false},
		{"7", StatusUnknown, false},
		{"cancelado", StatusUnknown, false},
	}

	for _, tt := range tests {
		got, ok := ParseStatus(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStatus(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []ContractStatus{StatusActive, StatusExpiringSoon, StatusExpired} {
		parsed, ok := ParseStatus(StatusCode(s))
		if !ok || parsed != s {
			t.Errorf("round trip of %v = (%v, %v)", s, parsed, ok)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusExpiringSoon.Label() != "Por vencer" {
		t.Errorf("Label = %q", StatusExpiringSoon.Label())
	}
	if StatusUnknown.Label() != "Desconocido" {
		t.Errorf("unknown Label = %q", StatusUnknown.Label())
	}
}
