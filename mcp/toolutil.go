package mcp

import (
	"encoding/json"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// toolResult maps an Output envelope to a CallToolResult. Failures carry the
// error message as text with IsError set; successes carry the JSON envelope in
// the `text` or `data` field depending on svc.UseTextField().
func toolResult(svc *Service, out *Output) (*schema.CallToolResult, *jsonrpc.Error) {
	if out.Status == "error" {
		isErr := true
		return &schema.CallToolResult{
			IsError: &isErr,
			Content: []schema.CallToolResultContentElem{{Text: out.Error}},
		}, nil
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	elem := schema.CallToolResultContentElem{Data: string(data)}
	if svc.UseTextField() {
		elem = schema.CallToolResultContentElem{Text: string(data)}
	}
	return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{elem}}, nil
}
