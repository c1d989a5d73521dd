package mcp

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
)

func registerTools(base *protoserver.DefaultHandler, ret *Handler) error {
	svc := ret.service

	if err := protoserver.RegisterTool[*NameInput, *Output](base.Registry, "connGet", "Get connection config (url, credentials, service type, properties) by name.", func(ctx context.Context, input *NameInput) (*schema.CallToolResult, *jsonrpc.Error) {
		return toolResult(svc, svc.Get(ctx, input))
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*ListInput, *Output](base.Registry, "connList", "List connection configs, optionally filtered by name pattern.", func(ctx context.Context, input *ListInput) (*schema.CallToolResult, *jsonrpc.Error) {
		return toolResult(svc, svc.List(ctx, input))
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*ConfigInput, *Output](base.Registry, "connAdd", "Create a connection config. Fails in STRICT security level or when the name already exists.", func(ctx context.Context, input *ConfigInput) (*schema.CallToolResult, *jsonrpc.Error) {
		return toolResult(svc, svc.Add(ctx, input))
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*ConfigInput, *Output](base.Registry, "connEdit", "Replace an existing connection config. Fails in STRICT security level.", func(ctx context.Context, input *ConfigInput) (*schema.CallToolResult, *jsonrpc.Error) {
		return toolResult(svc, svc.Edit(ctx, input))
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*NameInput, *Output](base.Registry, "connDelete", "Delete a connection config by name. Fails in STRICT security level.", func(ctx context.Context, input *NameInput) (*schema.CallToolResult, *jsonrpc.Error) {
		return toolResult(svc, svc.Delete(ctx, input))
	}); err != nil {
		return err
	}
	return nil
}
