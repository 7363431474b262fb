package model

import (
	"testing"
)

func TestParseInviteCode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCode    string
		wantKey     string
		shouldError bool
	}{
		{
			name:     "lowercase input is normalized",
			input:    "abcd-1234",
			wantCode: "ABCD-1234",
			wantKey:  "ABCD1234",
		},
		{
			name:     "already canonical",
			input:    "WXYZ-9876",
			wantCode: "WXYZ-9876",
			wantKey:  "WXYZ9876",
		},
		{
			name:     "surrounding whitespace",
			input:    "  abcd-1234  ",
			wantCode: "ABCD-1234",
			wantKey:  "ABCD1234",
		},
		{
			name:        "missing dash",
			input:       "ABCD1234",
			shouldError: true,
		},
		{
			name:        "wrong group lengths",
			input:       "ABC-12345",
			shouldError: true,
		},
		{
			name:        "invalid characters",
			input:       "AB!D-1234",
			shouldError: true,
		},
		{
			name:        "empty",
			input:       "",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, key, err := ParseInviteCode(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Errorf("expected error for input %q, got code %q", tt.input, code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for input %q: %v", tt.input, err)
			}
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
			if key != tt.wantKey {
				t.Errorf("key = %q, want %q", key, tt.wantKey)
			}
		})
	}
}

func TestGenerateInviteCodeRoundTrips(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("GenerateInviteCode() error = %v", err)
		}
		parsed, key, err := ParseInviteCode(code)
		if err != nil {
			t.Fatalf("generated code %q does not parse: %v", code, err)
		}
		if parsed != code {
			t.Errorf("generated code %q is not canonical", code)
		}
		if len(key) != 8 {
			t.Errorf("key %q length = %d, want 8", key, len(key))
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("generator produced a constant code")
	}
}

func TestValidFoodOption(t *testing.T) {
	for _, valid := range []string{"salmon", "chicken", "steak", "vegetarian-risotto", "unknown"} {
		if !ValidFoodOption(valid) {
			t.Errorf("ValidFoodOption(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "pizza", "Salmon", "STEAK"} {
		if ValidFoodOption(invalid) {
			t.Errorf("ValidFoodOption(%q) = true, want false", invalid)
		}
	}
}
