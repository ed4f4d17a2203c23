package reqjson

import (
	"net/http/httptest"
	"strings"
	"testing"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Count int    `json:"count" validate:"min=0,max=100"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"x","email":"x@test.com","count":5}`, ""},
		{"valid minimal", `{"name":"x"}`, ""},
		{"malformed json", `{"name":`, "invalid JSON body"},
		{"unknown field", `{"name":"x","bogus":1}`, "invalid JSON body"},
		{"missing required", `{"count":5}`, "validation failed"},
		{"bad email", `{"name":"x","email":"not-an-email"}`, "validation failed"},
		{"out of range", `{"name":"x","count":101}`, "validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var dst samplePayload
			err := Decode(r, &dst)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_FlattensFieldErrors(t *testing.T) {
	err := Validate(samplePayload{Count: -1})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Name") || !strings.Contains(msg, "Count") {
		t.Errorf("expected both failing fields in message, got %q", msg)
	}
}
