package utils

import (
	"crypto/rand" // secure random source for invitation codes
	"strings"
)

// invitationAlphabet excludes ambiguous characters (0/O, 1/I/L) so codes
// survive being read over the phone.
const invitationAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewInvitationCode returns a random code of n characters drawn from the
// unambiguous alphabet.  Codes are compared case-insensitively, so callers
// should normalize with NormalizeInvitationCode before lookups.
func NewInvitationCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = invitationAlphabet[int(b)%len(invitationAlphabet)]
	}
	return string(out), nil
}

// NormalizeInvitationCode trims whitespace and upper-cases a code typed by
// a guest.
func NormalizeInvitationCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
