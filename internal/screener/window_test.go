package screener

import (
	"reflect"
	"testing"
)

func TestHourChunks(t *testing.T) {
	got, err := HourChunks(10000, 1800, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []HourChunk{
		{HourIndex: 0, From: 8201, To: 10000},
		{HourIndex: 1, From: 6401, To: 8200},
		{HourIndex: 2, From: 4601, To: 6400},
		{HourIndex: 3, From: 2801, To: 4600},
		{HourIndex: 4, From: 1001, To: 2800},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chunks mismatch: %+v != %+v", got, want)
	}

	var covered uint64
	for _, chunk := range got {
		covered += chunk.To - chunk.From + 1
	}
	if covered != 9000 {
		t.Fatalf("covered blocks mismatch: %d", covered)
	}
}

func TestHourChunksClampedAtGenesis(t *testing.T) {
	got, err := HourChunks(2000, 1800, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []HourChunk{
		{HourIndex: 0, From: 201, To: 2000},
		{HourIndex: 1, From: 0, To: 200},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chunks mismatch: %+v != %+v", got, want)
	}
}

func TestHourChunksShortChain(t *testing.T) {
	got, err := HourChunks(500, 1800, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []HourChunk{{HourIndex: 0, From: 0, To: 500}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("chunks mismatch: %+v != %+v", got, want)
	}
}

func TestHourChunksInvalid(t *testing.T) {
	if _, err := HourChunks(100, 0, 1); err == nil {
		t.Fatalf("expected error for zero blocks per hour")
	}
	if _, err := HourChunks(100, 10, 0); err == nil {
		t.Fatalf("expected error for zero hours")
	}
}
