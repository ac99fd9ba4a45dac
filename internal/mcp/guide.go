package mcp

import "encoding/json"

// UsageGuideURI identifies the static usage guide resource.
const UsageGuideURI = "guide://usage"

// PromptProgramSummary names the summary formatting prompt.
const PromptProgramSummary = "program_summary"

// Resource describes one readable resource.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// ResourcesListResult is the result payload of resources/list.
type ResourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// ReadResourceParams are the params of a resources/read request.
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// ResourceContents is one element of a resources/read result.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// ReadResourceResult is the result payload of resources/read.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// Prompt describes one retrievable prompt template.
type Prompt struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PromptsListResult is the result payload of prompts/list.
type PromptsListResult struct {
	Prompts []Prompt `json:"prompts"`
}

// GetPromptParams are the params of a prompts/get request.
type GetPromptParams struct {
	Name string `json:"name"`
}

// PromptMessage is one message of a prompt template.
type PromptMessage struct {
	Role    string       `json:"role"`
	Content ContentBlock `json:"content"`
}

// GetPromptResult is the result payload of prompts/get.
type GetPromptResult struct {
	Description string          `json:"description"`
	Messages    []PromptMessage `json:"messages"`
}

// ResourceCatalog lists the readable resources.
var ResourceCatalog = []Resource{{
	URI:         UsageGuideURI,
	Name:        "usage",
	Description: "Quick reference guide for using the EduMatch tools effectively.",
	MimeType:    "application/json",
}}

// PromptCatalog lists the retrievable prompts.
var PromptCatalog = []Prompt{{
	Name:        PromptProgramSummary,
	Description: "Template for creating user-friendly program summaries and recommendations.",
}}

// UsageGuide returns the guide document. The same payload is served as
// the guide://usage resource and at GET /usage on the origin.
func UsageGuide() map[string]any {
	return map[string]any{
		"description": "EduMatch Program Discovery Assistant",
		"available_tools": map[string]any{
			"programs_list": map[string]any{
				"purpose":     "Search and filter educational programs",
				"key_filters": []string{"country_name", "institution_name", "program_name", "max_tuition"},
				"example":     "Find programs in Germany under $20000",
			},
			"rank_programs": map[string]any{
				"purpose":         "Get ranked program recommendations",
				"ranking_methods": []string{"popularity", "engagement", "cost_effectiveness"},
				"example":         "Show top 5 most popular programs in Canada",
			},
		},
		"data_insights": map[string]any{
			"metrics":   "Programs include CTR (click-through rate), views, and impressions",
			"cost_info": "Tuition amounts available for budget filtering",
			"locations": "Programs available from institutions worldwide",
		},
	}
}

// ReadUsageGuide serializes the guide as resource contents.
func ReadUsageGuide() ReadResourceResult {
	data, _ := json.Marshal(UsageGuide())
	return ReadResourceResult{Contents: []ResourceContents{{
		URI:      UsageGuideURI,
		MimeType: "application/json",
		Text:     string(data),
	}}}
}

const programSummaryTemplate = `
When presenting educational programs to users, structure your response as follows:

## Program Recommendations

For each program, include:
- **Program Name** at [Institution Name]
- **Location**: Country
- **Duration**: X months
- **Tuition**: $X (if available)
- **Popularity**: Describe engagement metrics in user-friendly terms
- **Why it's a good match**: Based on their search criteria

## Summary
- Total programs found: X
- Key insights about their options
- Suggestions for refining search if needed

Keep the tone helpful and informative. Translate technical metrics (CTR, views, impressions) into user-friendly language like "highly popular" or "well-regarded program."
`

// ProgramSummaryPrompt returns the program_summary prompt template.
func ProgramSummaryPrompt() GetPromptResult {
	return GetPromptResult{
		Description: "Template for creating user-friendly program summaries and recommendations.",
		Messages: []PromptMessage{{
			Role:    "user",
			Content: ContentBlock{Type: "text", Text: programSummaryTemplate},
		}},
	}
}
