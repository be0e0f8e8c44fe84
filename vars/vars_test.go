package vars

import "testing"

func TestFirstNonZero(t *testing.T) {
	if got := FirstNonZero(0, 0, 3, 4); got != 3 {
		t.Fatalf("got %v", got)
	}
	if got := FirstNonZero("", ""); got != "" {
		t.Fatalf("got %v", got)
	}
	if got := FirstNonZero[uint64](); got != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestStrToBool(t *testing.T) {
	for str, expected := range map[string]bool{
		"true":  true,
		"Yes":   true,
		" on ":  true,
		"1":     true,
		"false": false,
		"n":     false,
		"0":     false,
		"maybe": false,
	} {
		if got := StrToBool(str); got != expected {
			t.Fatalf("%q: got %v", str, got)
		}
	}
}
