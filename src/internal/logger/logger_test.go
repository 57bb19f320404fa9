package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestSanitizePayloadMasksPasswords(t *testing.T) {
	payload := map[string]any{
		"accountNumber": "0123456789",
		"password":      "Str0ng!Pass#2026",
		"nested": map[string]any{
			"Password-Hash": "$2a$10$abc",
		},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", SanitizePayload(payload))
	}
	if sanitized["password"] != "******" {
		t.Fatalf("expected password to be masked, got %v", sanitized["password"])
	}
	if sanitized["accountNumber"] != "0123456789" {
		t.Fatalf("expected accountNumber to be kept, got %v", sanitized["accountNumber"])
	}
	nested := sanitized["nested"].(map[string]any)
	if nested["Password-Hash"] != "******" {
		t.Fatalf("expected nested hash to be masked, got %v", nested["Password-Hash"])
	}
}

func TestErrorWritesJSONLineWithErrorField(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Error("ledger service withdraw failed", errors.New("boom"), Fields{
		"accountNumber": "0123456789",
		"password":      "secret",
	})

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}
	if entry["msg"] != "ledger service withdraw failed" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["level"] != "ERROR" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("expected error field, got %v", entry["error"])
	}
	if entry["password"] != "******" {
		t.Fatalf("expected masked password, got %v", entry["password"])
	}
}
