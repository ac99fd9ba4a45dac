// Package main implements the EduMatch MCP stdio server.
// It reads JSON-RPC requests from stdin and writes responses to stdout,
// forwarding tool calls to the origin query service over HTTP.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/edumatch/edumatch/internal/jsonrpc"
	"github.com/edumatch/edumatch/internal/mcp"
	"github.com/edumatch/edumatch/internal/origin"
	"github.com/edumatch/edumatch/internal/program"
)

func main() {
	baseURL := os.Getenv("EDUMATCH_ORIGIN_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	client := origin.New(baseURL, 15*time.Second)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonrpc.Request
		if err := json.Unmarshal(line, &req); err != nil {
			writeResponse(jsonrpc.NewError(nil, jsonrpc.CodeParseError, "Parse error"))
			continue
		}

		// Notifications (no ID) are acknowledged silently
		if req.ID == nil {
			continue
		}

		writeResponse(handleRequest(client, req))
	}
}

func handleRequest(client *origin.Client, req jsonrpc.Request) jsonrpc.Response {
	switch req.Method {
	case "initialize":
		return jsonrpc.NewResponse(req.ID, map[string]any{
			"protocolVersion": mcp.ProtocolVersion,
			"capabilities":    mcp.Capabilities{},
			"serverInfo":      mcp.ServerInfo{Name: mcp.ServerName, Version: mcp.ServerVersion},
		})

	case "tools/list":
		return jsonrpc.NewResponse(req.ID, mcp.ToolsListResult{Tools: mcp.Catalog})

	case "tools/call":
		var params mcp.CallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, "Invalid params")
		}
		return jsonrpc.NewResponse(req.ID, handleToolCall(client, params))

	case "resources/list":
		return jsonrpc.NewResponse(req.ID, mcp.ResourcesListResult{Resources: mcp.ResourceCatalog})

	case "resources/read":
		var params mcp.ReadResourceParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, "Invalid params")
		}
		if params.URI != mcp.UsageGuideURI {
			return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams,
				fmt.Sprintf("Unknown resource: %s", params.URI))
		}
		return jsonrpc.NewResponse(req.ID, mcp.ReadUsageGuide())

	case "prompts/list":
		return jsonrpc.NewResponse(req.ID, mcp.PromptsListResult{Prompts: mcp.PromptCatalog})

	case "prompts/get":
		var params mcp.GetPromptParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, "Invalid params")
		}
		if params.Name != mcp.PromptProgramSummary {
			return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams,
				fmt.Sprintf("Unknown prompt: %s", params.Name))
		}
		return jsonrpc.NewResponse(req.ID, mcp.ProgramSummaryPrompt())

	default:
		return jsonrpc.NewError(req.ID, jsonrpc.CodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func handleToolCall(client *origin.Client, params mcp.CallParams) mcp.CallResult {
	ctx := context.Background()

	var path string
	var defaultLimit int
	switch params.Name {
	case "programs_list":
		path, defaultLimit = origin.PathPrograms, program.DefaultListLimit
	case "rank_programs":
		path, defaultLimit = origin.PathRank, program.DefaultRankLimit
	default:
		return mcp.ErrorResult(fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	if _, err := program.ParseFilter(params.Arguments, defaultLimit); err != nil {
		return mcp.ErrorResult("Invalid arguments: " + err.Error())
	}

	raw, err := client.CallTool(ctx, path, params.Arguments)
	if err != nil {
		return mcp.ErrorResult(err.Error())
	}
	return mcp.TextResult(raw)
}

func writeResponse(resp jsonrpc.Response) {
	data, _ := json.Marshal(resp)
	fmt.Fprintf(os.Stdout, "%s\n", data)
	_ = os.Stdout.Sync()
}
