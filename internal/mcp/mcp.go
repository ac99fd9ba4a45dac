// Package mcp holds the Model Context Protocol wire types shared by the
// gateway, the origin stream, and the stdio server, plus the static
// catalog of the two EduMatch tools.
package mcp

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the MCP protocol revision advertised on initialize.
const ProtocolVersion = "2024-11-05"

// ServerName and ServerVersion identify this deployment to clients.
const (
	ServerName    = "EduMatch MCP Server"
	ServerVersion = "1.0.0"
)

// Capabilities advertises empty capability sets for the three MCP
// feature areas. Empty objects mean "present, no options".
type Capabilities struct {
	Tools     struct{} `json:"tools"`
	Resources struct{} `json:"resources"`
	Prompts   struct{} `json:"prompts"`
}

// ServerInfo is the static identity metadata sent on initialize.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeParams is the payload of the initialize notification.
type InitializeParams struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ClientInfo      ServerInfo   `json:"clientInfo"`
}

// NewInitializeParams returns the fixed initialize payload.
func NewInitializeParams() InitializeParams {
	return InitializeParams{
		ProtocolVersion: ProtocolVersion,
		ClientInfo:      ServerInfo{Name: ServerName, Version: ServerVersion},
	}
}

// Tool describes one callable tool and its input shape.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ToolsListResult is the result payload of tools/list.
type ToolsListResult struct {
	Tools []Tool `json:"tools"`
}

// CallParams are the params of a tools/call request.
type CallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ContentBlock is one element of a tool-call result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the result payload of tools/call. Tool output is always
// the text-wrapped shape: a single text block holding the JSON-encoded
// origin payload.
type CallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// TextResult wraps already-serialized JSON as a tool-call result.
func TextResult(raw json.RawMessage) CallResult {
	return CallResult{Content: []ContentBlock{{Type: "text", Text: string(raw)}}}
}

// JSONResult marshals v and wraps it as a tool-call result.
func JSONResult(v any) CallResult {
	data, _ := json.Marshal(v)
	return TextResult(data)
}

// ErrorResult wraps an error message as a failed tool-call result.
func ErrorResult(msg string) CallResult {
	return CallResult{Content: []ContentBlock{{Type: "text", Text: msg}}, IsError: true}
}

// Catalog is the static descriptor set for the two EduMatch tools. The
// schemas mirror the origin's accepted arguments, defaults included.
var Catalog = []Tool{
	{
		Name:        "programs_list",
		Description: "Search and filter educational programs by name, country, institution, and tuition budget. Returns program details including costs, duration, and popularity metrics.",
		InputSchema: mustJSON(`{
			"type": "object",
			"properties": {
				"program_name":     {"type": "string", "description": "Substring match on program name, case-insensitive"},
				"country_name":     {"type": "string", "description": "Substring match on country"},
				"institution_name": {"type": "string", "description": "Substring match on institution"},
				"max_tuition":      {"type": "number", "description": "Upper bound on tuition, inclusive"},
				"limit":            {"type": "number", "default": 20},
				"offset":           {"type": "number", "default": 0}
			}
		}`),
	},
	{
		Name:        "rank_programs",
		Description: "Get ranked program recommendations. Ranking methods: popularity (views and impressions), engagement (click-through rate), cost_effectiveness (views per tuition dollar).",
		InputSchema: mustJSON(`{
			"type": "object",
			"properties": {
				"country_name":     {"type": "string", "description": "Substring match on country"},
				"institution_name": {"type": "string", "description": "Substring match on institution"},
				"max_tuition":      {"type": "number", "description": "Upper bound on tuition, inclusive"},
				"ranking_method":   {"type": "string", "default": "popularity"},
				"limit":            {"type": "number", "default": 10}
			}
		}`),
	},
}

func mustJSON(s string) json.RawMessage {
	var v json.RawMessage
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		panic(fmt.Sprintf("invalid JSON in tool schema: %v", err))
	}
	return v
}
