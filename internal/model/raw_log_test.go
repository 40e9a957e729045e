package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestRawLogRecordJSONRoundTrip(t *testing.T) {
	original := RawLogRecord{
		BlockNumber: 24100000,
		TxHash:      "0xdef456",
		LogIndex:    12,
		Address:     "0x1111111111111111111111111111111111111111",
		Topics:      []string{"0xaaa", "0xbbb"},
		Data:        "0xdeadbeef",
		Removed:     false,
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded RawLogRecord
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}

func TestRoleMismatchErrorMessage(t *testing.T) {
	err := &RoleMismatchError{
		Pool:     "0x1111111111111111111111111111111111111111",
		AltToken: "0xcccccccccccccccccccccccccccccccccccccccc",
		Token0:   "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Token1:   "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}

	msg := err.Error()
	for _, want := range []string{err.Pool, err.AltToken, err.Token0, err.Token1} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message missing %s: %s", want, msg)
		}
	}
}

func TestQuoteSlotAddress(t *testing.T) {
	role := TokenRole{
		AltIsToken0: true,
		Token0:      "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Token1:      "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}
	if got := role.QuoteSlotAddress(); got != role.Token1 {
		t.Fatalf("quote slot mismatch: %s", got)
	}

	role.AltIsToken0 = false
	if got := role.QuoteSlotAddress(); got != role.Token0 {
		t.Fatalf("quote slot mismatch: %s", got)
	}
}
