package model

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

// inviteCodeRe matches the canonical user-facing code format after
// uppercasing: four alphanumerics, a dash, four alphanumerics.
var inviteCodeRe = regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// Code alphabet excludes characters that read ambiguously on paper
// invitations (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// ParseInviteCode normalizes user input to the canonical XXXX-XXXX code and
// its storage key (the same 8 characters with the dash removed).
func ParseInviteCode(input string) (code, key string, err error) {
	code = strings.ToUpper(strings.TrimSpace(input))
	if !inviteCodeRe.MatchString(code) {
		return "", "", fmt.Errorf("invalid invite code format: %q", input)
	}
	return code, strings.ReplaceAll(code, "-", ""), nil
}

// StorageKey returns the storage key for a canonical invite code. The code
// must already be in XXXX-XXXX form.
func StorageKey(code string) string {
	return strings.ReplaceAll(code, "-", "")
}

// GenerateInviteCode produces a random code in canonical form. Uniqueness
// against the store is the caller's responsibility.
func GenerateInviteCode() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b[:4]) + "-" + string(b[4:]), nil
}
