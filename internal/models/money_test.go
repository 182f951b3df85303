package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalsAsFixedTwoDecimalString(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.NewFromFloat(25))
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"25.00"` {
		t.Fatalf(`expected "25.00", got %s`, data)
	}
}

func TestMoneyUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var fromString Money
	if err := json.Unmarshal([]byte(`"19.999"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.String() != "20.00" {
		t.Fatalf("expected rounded 20.00, got %s", fromString)
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`12.5`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.String() != "12.50" {
		t.Fatalf("expected 12.50, got %s", fromNumber)
	}
}

func TestMoneyScanRoundsToTwoDecimals(t *testing.T) {
	var m Money
	if err := m.Scan("7.125"); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if m.String() != "7.13" {
		t.Fatalf("expected 7.13, got %s", m)
	}
}

func TestMoneyLineTotalArithmetic(t *testing.T) {
	var total Money
	total = total.Plus(NewMoneyFromFloat(10.00).MulQuantity(3))
	total = total.Plus(NewMoneyFromFloat(4.99).MulQuantity(2))
	if total.String() != "39.98" {
		t.Fatalf("expected 39.98, got %s", total)
	}
}
