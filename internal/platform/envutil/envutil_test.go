package envutil

import "testing"

func TestInt(t *testing.T) {
	t.Setenv("TGS_TEST_INT", " 12 ")
	if got := Int("TGS_TEST_INT", 3); got != 12 {
		t.Errorf("got %d, want 12", got)
	}
	t.Setenv("TGS_TEST_INT", "abc")
	if got := Int("TGS_TEST_INT", 3); got != 3 {
		t.Errorf("got %d, want fallback 3", got)
	}
}

func TestInt64(t *testing.T) {
	tests := map[string]int64{"42": 42, "0x2a": 42, "-7": -7, "seven": 1, "": 1}
	for in, want := range tests {
		t.Setenv("TGS_TEST_SEED", in)
		if got := Int64("TGS_TEST_SEED", 1); got != want {
			t.Errorf("Int64(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFloat(t *testing.T) {
	tests := map[string]float64{"96": 96, "12.5": 12.5, "Inf": 48, "NaN": 48, "big": 48}
	for in, want := range tests {
		t.Setenv("TGS_TEST_SIZE", in)
		if got := Float("TGS_TEST_SIZE", 48); got != want {
			t.Errorf("Float(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestString(t *testing.T) {
	if got := String("TGS_TEST_UNSET", "dev"); got != "dev" {
		t.Errorf("got %q", got)
	}
	t.Setenv("TGS_TEST_STR", "prod")
	if got := String("TGS_TEST_STR", "dev"); got != "prod" {
		t.Errorf("got %q", got)
	}
}
