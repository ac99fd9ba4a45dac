package main

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/edumatch/edumatch/internal/jsonrpc"
	"github.com/edumatch/edumatch/internal/mcp"
	"github.com/edumatch/edumatch/internal/origin"
)

// testClient points at an unreachable origin. The methods under test
// never leave the process.
func testClient() *origin.Client {
	return origin.New("http://origin.invalid", time.Second)
}

func request(method, params string) jsonrpc.Request {
	req := jsonrpc.Request{JSONRPC: jsonrpc.Version, ID: json.RawMessage(`1`), Method: method}
	if params != "" {
		req.Params = json.RawMessage(params)
	}
	return req
}

func TestHandleRequest_ResourcesList(t *testing.T) {
	resp := handleRequest(testClient(), request("resources/list", ""))
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(mcp.ResourcesListResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if len(result.Resources) != 1 || result.Resources[0].URI != mcp.UsageGuideURI {
		t.Errorf("expected the usage guide resource, got %+v", result.Resources)
	}
}

func TestHandleRequest_ResourcesRead(t *testing.T) {
	resp := handleRequest(testClient(), request("resources/read", `{"uri":"guide://usage"}`))
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(mcp.ReadResourceResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected one contents block, got %d", len(result.Contents))
	}
	c := result.Contents[0]
	if c.URI != mcp.UsageGuideURI || c.MimeType != "application/json" {
		t.Errorf("unexpected contents metadata: %+v", c)
	}
	var guide map[string]any
	if err := json.Unmarshal([]byte(c.Text), &guide); err != nil {
		t.Fatalf("guide text is not valid JSON: %v", err)
	}
	if _, ok := guide["available_tools"]; !ok {
		t.Error("guide must describe the available tools")
	}
}

func TestHandleRequest_ResourcesRead_UnknownURI(t *testing.T) {
	resp := handleRequest(testClient(), request("resources/read", `{"uri":"guide://nope"}`))
	if resp.Error == nil || resp.Error.Code != jsonrpc.CodeInvalidParams {
		t.Fatalf("expected -32602 for unknown resource, got %+v", resp.Error)
	}
}

func TestHandleRequest_PromptsList(t *testing.T) {
	resp := handleRequest(testClient(), request("prompts/list", ""))
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(mcp.PromptsListResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if len(result.Prompts) != 1 || result.Prompts[0].Name != mcp.PromptProgramSummary {
		t.Errorf("expected the program_summary prompt, got %+v", result.Prompts)
	}
}

func TestHandleRequest_PromptsGet(t *testing.T) {
	resp := handleRequest(testClient(), request("prompts/get", `{"name":"program_summary"}`))
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(mcp.GetPromptResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if len(result.Messages) != 1 || result.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", result.Messages)
	}
	if !strings.Contains(result.Messages[0].Content.Text, "Program Recommendations") {
		t.Error("prompt text must carry the summary template")
	}
}

func TestHandleRequest_PromptsGet_UnknownName(t *testing.T) {
	resp := handleRequest(testClient(), request("prompts/get", `{"name":"haiku"}`))
	if resp.Error == nil || resp.Error.Code != jsonrpc.CodeInvalidParams {
		t.Fatalf("expected -32602 for unknown prompt, got %+v", resp.Error)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	resp := handleRequest(testClient(), request("resources/subscribe", ""))
	if resp.Error == nil || resp.Error.Code != jsonrpc.CodeMethodNotFound {
		t.Fatalf("expected -32601, got %+v", resp.Error)
	}
}

func TestHandleRequest_InitializeAdvertisesAllSurfaces(t *testing.T) {
	resp := handleRequest(testClient(), request("initialize", `{}`))
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	data, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Capabilities map[string]json.RawMessage `json:"capabilities"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Every advertised capability area has a handler in the dispatch.
	for _, area := range []string{"tools", "resources", "prompts"} {
		if _, ok := decoded.Capabilities[area]; !ok {
			t.Errorf("missing capability set %q", area)
		}
	}
}
