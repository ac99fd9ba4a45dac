package jsonrpc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewResponse_EchoesIDVerbatim(t *testing.T) {
	for _, id := range []string{`42`, `"abc-123"`, `null`} {
		resp := NewResponse(json.RawMessage(id), map[string]any{"ok": true})
		data, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(data), `"id":`+id) {
			t.Errorf("id %s not echoed verbatim: %s", id, data)
		}
	}
}

func TestNewError_NilIDSerializesAsNull(t *testing.T) {
	resp := NewError(nil, CodeParseError, "Parse error")
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"id":null`) {
		t.Errorf("expected id null, got %s", data)
	}
	if !strings.Contains(string(data), `"code":-32700`) {
		t.Errorf("expected code -32700, got %s", data)
	}
	if strings.Contains(string(data), `"result"`) {
		t.Errorf("error response must not carry a result: %s", data)
	}
}
