package core

import "testing"

func TestParseSide(t *testing.T) {
	if got := ParseSide(" sell "); got != Sell {
		t.Fatalf("ParseSide() = %q, want %q", got, Sell)
	}
	if !ParseSide("buy").Valid() {
		t.Fatalf("ParseSide(buy).Valid() = false, want true")
	}
	if ParseSide("HOLD").Valid() {
		t.Fatalf("ParseSide(HOLD).Valid() = true, want false")
	}
}
