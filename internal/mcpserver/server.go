// Package mcpserver exposes the contact operations as MCP tools.
package mcpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/peoplebridge/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/tool"
	"github.com/matiasleandrokruk/peoplebridge/internal/version"
)

const (
	serverName = "peoplebridge"

	// StdioSubject is the actor recorded for calls over the local stdio transport.
	StdioSubject = "mcp-stdio"
)

// New returns an MCP server with the five contact tools. Every call runs with
// subject stored under ctxkeys.Subject so mutations are attributed to it.
func New(svc *contacts.Service, log zerolog.Logger, subject string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version.Version}, nil)
	h := handlers{svc: svc, log: log, subject: subject}

	mcp.AddTool(server, contactTool(tool.BuiltinListContacts), h.listContacts)
	mcp.AddTool(server, contactTool(tool.BuiltinGetContact), h.getContact)
	mcp.AddTool(server, contactTool(tool.BuiltinCreateContact), h.createContact)
	mcp.AddTool(server, contactTool(tool.BuiltinUpdateContact), h.updateContact)
	mcp.AddTool(server, contactTool(tool.BuiltinDeleteContact), h.deleteContact)

	return server
}

// contactTool describes a builtin with the same input schema the tool registry validates against.
func contactTool(name string) *mcp.Tool {
	return &mcp.Tool{Name: name, Description: tool.Description(name), InputSchema: tool.InputSchema(name)}
}

// HTTPHandler serves the streamable HTTP transport. Each session gets a server
// bound to the subject the auth middleware put on the initializing request.
func HTTPHandler(svc *contacts.Service, log zerolog.Logger) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return New(svc, log, ctxkeys.String(r.Context(), ctxkeys.Subject))
	}, nil)
}

// Serve runs server on transport until the client disconnects or ctx ends.
// Cancellation is a normal shutdown and returns nil.
func Serve(ctx context.Context, server *mcp.Server, transport mcp.Transport, log zerolog.Logger) error {
	log.Info().Msg("mcp server running")
	err := server.Run(ctx, transport)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

type handlers struct {
	svc     *contacts.Service
	log     zerolog.Logger
	subject string
}

// call attributes ctx to the session subject and logs the outcome of one tool call.
func call[In, Out any](ctx context.Context, h handlers, name, resource string, in In, fn func(context.Context, In) (*Out, error)) (*mcp.CallToolResult, Out, error) {
	if h.subject != "" {
		ctx = ctxkeys.WithValue(ctx, ctxkeys.Subject, h.subject)
	}

	start := time.Now()
	out, err := fn(ctx, in)
	evt := h.log.Info()
	if err != nil {
		evt = h.log.Warn().Str("kind", string(contacts.KindOf(err)))
	}
	if reqID := ctxkeys.String(ctx, ctxkeys.RequestID); reqID != "" {
		evt = evt.Str("request_id", reqID)
	}
	evt.Str("tool", name).Str("resource", resource).Dur("took", time.Since(start)).Msg("tool call")

	var zero Out
	if err != nil {
		return nil, zero, err
	}
	return nil, *out, nil
}

func (h handlers) listContacts(ctx context.Context, _ *mcp.CallToolRequest, in tool.ListContactsParams) (*mcp.CallToolResult, contacts.ListResult, error) {
	return call(ctx, h, tool.BuiltinListContacts, "", in, func(ctx context.Context, in tool.ListContactsParams) (*contacts.ListResult, error) {
		return h.svc.List(ctx, in.Request())
	})
}

func (h handlers) getContact(ctx context.Context, _ *mcp.CallToolRequest, in tool.GetContactParams) (*mcp.CallToolResult, contacts.Contact, error) {
	return call(ctx, h, tool.BuiltinGetContact, in.ResourceName, in, func(ctx context.Context, in tool.GetContactParams) (*contacts.Contact, error) {
		return h.svc.Get(ctx, in.Request())
	})
}

func (h handlers) createContact(ctx context.Context, _ *mcp.CallToolRequest, in tool.CreateContactParams) (*mcp.CallToolResult, contacts.MutationResult, error) {
	return call(ctx, h, tool.BuiltinCreateContact, "", in, func(ctx context.Context, in tool.CreateContactParams) (*contacts.MutationResult, error) {
		return h.svc.Create(ctx, in.Request())
	})
}

func (h handlers) updateContact(ctx context.Context, _ *mcp.CallToolRequest, in tool.UpdateContactParams) (*mcp.CallToolResult, contacts.MutationResult, error) {
	return call(ctx, h, tool.BuiltinUpdateContact, in.ResourceName, in, func(ctx context.Context, in tool.UpdateContactParams) (*contacts.MutationResult, error) {
		return h.svc.Update(ctx, in.Request())
	})
}

func (h handlers) deleteContact(ctx context.Context, _ *mcp.CallToolRequest, in tool.DeleteContactParams) (*mcp.CallToolResult, contacts.DeletionResult, error) {
	return call(ctx, h, tool.BuiltinDeleteContact, in.ResourceName, in, func(ctx context.Context, in tool.DeleteContactParams) (*contacts.DeletionResult, error) {
		return h.svc.Delete(ctx, in.Request())
	})
}
