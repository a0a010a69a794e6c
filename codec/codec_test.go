package codec

import "testing"

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONRoundTrip(t *testing.T) {
	original := sample{Name: "alice", Count: 2}

	data, err := JSON.Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded sample
	if err := JSON.Decode(data, &decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}
