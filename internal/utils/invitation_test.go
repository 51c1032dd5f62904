package utils

import (
	"strings"
	"testing"
)

func TestNewInvitationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewInvitationCode(8)
		if err != nil {
			t.Fatalf("NewInvitationCode: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("len = %d, want 8", len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(invitationAlphabet, r) {
				t.Fatalf("code %q contains %q outside alphabet", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes are not random")
	}
}

func TestNormalizeInvitationCode(t *testing.T) {
	if got := NormalizeInvitationCode("  ab2k9xyz \n"); got != "AB2K9XYZ" {
		t.Fatalf("got %q", got)
	}
}
