package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	ErrToolExecutorAlreadyRegistered = errors.New("tool executor already registered")
	ErrToolExecutorNotRegistered     = errors.New("tool executor not registered")
	ErrToolValidationFailed          = errors.New("tool params validation failed")
	ErrInvalidToolDefinition         = errors.New("invalid tool definition")
)

const emptyObjectSchema = `{"type":"object","additionalProperties":false,"properties":{}}`

type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type registered struct {
	def    ToolDefinition
	schema *jsonschema.Resolved
	exec   ToolExecutor
}

// ToolRegistry maps tool names to their definition and executor.
// It is safe for concurrent use.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]registered
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]registered)}
}

func (r *ToolRegistry) Register(def ToolDefinition, executor ToolExecutor) error {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" || executor == nil {
		return ErrToolExecutorNotRegistered
	}
	if len(def.InputSchema) == 0 {
		def.InputSchema = json.RawMessage(emptyObjectSchema)
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(def.InputSchema, &schema); err != nil {
		return fmt.Errorf("%w: input schema for %q must be a json object: %w", ErrInvalidToolDefinition, def.Name, err)
	}
	if schema.Type != "object" {
		return fmt.Errorf("%w: input schema for %q must have type object", ErrInvalidToolDefinition, def.Name)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("%w: resolve schema for %q: %w", ErrInvalidToolDefinition, def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; exists {
		return ErrToolExecutorAlreadyRegistered
	}
	r.tools[def.Name] = registered{def: def, schema: resolved, exec: executor}
	return nil
}

func (r *ToolRegistry) Get(name string) (ToolExecutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return nil, ErrToolExecutorNotRegistered
	}
	return t.exec, nil
}

// ListToolDefinitions returns every registered definition ordered by name.
func (r *ToolRegistry) ListToolDefinitions() []ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *ToolRegistry) ValidateParams(toolName string, params json.RawMessage) error {
	r.mu.RLock()
	t, ok := r.tools[toolName]
	r.mu.RUnlock()
	if !ok {
		return ErrToolExecutorNotRegistered
	}

	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	var input map[string]any
	if err := json.Unmarshal(params, &input); err != nil || input == nil {
		return fmt.Errorf("%w: params must be a json object", ErrToolValidationFailed)
	}
	if err := t.schema.Validate(input); err != nil {
		return fmt.Errorf("%w: %w", ErrToolValidationFailed, err)
	}
	return nil
}

// Execute validates params against the tool's schema, then runs it.
func (r *ToolRegistry) Execute(ctx context.Context, toolName string, params json.RawMessage) (json.RawMessage, error) {
	if err := r.ValidateParams(toolName, params); err != nil {
		return nil, err
	}
	exec, err := r.Get(toolName)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}
	return exec.Execute(ctx, params)
}
