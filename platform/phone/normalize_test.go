package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := map[string]string{
		"(201) 555-0123":   "+12015550123",
		"+44 121 234 5678": "+441212345678",
		"  ":               "",
		"call me maybe":    "call me maybe",
		"+1 555-0100":      "+1 555-0100",
	}
	for in, want := range cases {
		if got := NormalizeE164(in); got != want {
			t.Fatalf("NormalizeE164(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestNormalizePtr(t *testing.T) {
	if NormalizePtr(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
	blank := "   "
	if NormalizePtr(&blank) != nil {
		t.Fatal("expected nil for blank input")
	}
}
