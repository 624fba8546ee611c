package models

import (
	"encoding/json"
	"testing"
)

func TestRateJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Rate Rate `json:"rate"`
	}{Rate: MustRate("8.125")})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `{"rate":8.125}` {
		t.Fatalf("unexpected json %s", raw)
	}

	for _, input := range []string{`"18.5"`, `18.5`} {
		var r Rate
		if err := json.Unmarshal([]byte(input), &r); err != nil {
			t.Fatalf("unmarshal %s failed: %v", input, err)
		}
		if r.String() != "18.5" {
			t.Fatalf("unmarshal %s want 18.5 got %s", input, r)
		}
	}

	var r Rate
	if err := json.Unmarshal([]byte(`"abc"`), &r); err == nil {
		t.Fatalf("invalid rate should fail")
	}
}

func TestRateRoundsToFourPlaces(t *testing.T) {
	if got := MustRate("1.23456").String(); got != "1.2346" {
		t.Fatalf("want 1.2346 got %s", got)
	}
}
