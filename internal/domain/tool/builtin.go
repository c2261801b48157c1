package tool

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
)

const (
	BuiltinListContacts  = "list-contacts"
	BuiltinGetContact    = "get-contact"
	BuiltinCreateContact = "create-contact"
	BuiltinUpdateContact = "update-contact"
	BuiltinDeleteContact = "delete-contact"
)

var builtinSchemas = map[string]func() *jsonschema.Schema{
	BuiltinListContacts:  mustSchema[ListContactsParams],
	BuiltinGetContact:    mustSchema[GetContactParams],
	BuiltinCreateContact: mustSchema[CreateContactParams],
	BuiltinUpdateContact: mustSchema[UpdateContactParams],
	BuiltinDeleteContact: mustSchema[DeleteContactParams],
}

// BuiltinDefinitions describes the contact tools, in the order they are listed to clients.
func BuiltinDefinitions() []ToolDefinition {
	defs := []ToolDefinition{
		{
			Name:        BuiltinListContacts,
			Description: "List Google Contacts. Returns resourceName, names, emailAddresses and phoneNumbers per contact. Set query to search by name, email or phone; use personFields to limit data.",
		},
		{
			Name:        BuiltinGetContact,
			Description: "Retrieve one contact by resourceName (format people/c[ID]). Returns the contact with all requested fields.",
		},
		{
			Name:        BuiltinCreateContact,
			Description: "Create a new contact. Returns the created contact with its new resourceName and etag.",
		},
		{
			Name:        BuiltinUpdateContact,
			Description: "Modify an existing contact. updatePersonFields names the fields being replaced. Returns the updated contact with its new etag.",
		},
		{
			Name:        BuiltinDeleteContact,
			Description: "Remove a contact permanently. Use the resourceName from list-contacts or get-contact.",
		},
	}
	for i := range defs {
		raw, err := json.Marshal(builtinSchemas[defs[i].Name]())
		if err != nil {
			panic(fmt.Sprintf("tool: marshal %s schema: %v", defs[i].Name, err))
		}
		defs[i].InputSchema = raw
	}
	return defs
}

// InputSchema returns the input schema of a builtin tool, or nil for an unknown name.
// The MCP server and the registry share it so both surfaces accept the same input.
func InputSchema(name string) *jsonschema.Schema {
	schema, ok := builtinSchemas[name]
	if !ok {
		return nil
	}
	return schema()
}

// mustSchema infers the schema of a params struct from its json and jsonschema tags.
// Unknown fields are rejected and biography content types are limited to the two the API accepts.
func mustSchema[T any]() *jsonschema.Schema {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("tool: infer schema for %T: %v", *new(T), err))
	}
	s.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
	if bio, ok := s.Properties["biographies"]; ok && bio.Items != nil {
		if ct, ok := bio.Items.Properties["contentType"]; ok {
			ct.Enum = []any{"TEXT_PLAIN", "TEXT_HTML"}
		}
	}
	return s
}

// Description returns the registered description of a builtin tool, or "".
func Description(name string) string {
	for _, def := range BuiltinDefinitions() {
		if def.Name == name {
			return def.Description
		}
	}
	return ""
}

// RegisterBuiltins registers every contact tool backed by svc.
func RegisterBuiltins(r *ToolRegistry, svc *contacts.Service) error {
	executors := map[string]ToolExecutor{
		BuiltinListContacts:  NewListContactsExecutor(svc),
		BuiltinGetContact:    NewGetContactExecutor(svc),
		BuiltinCreateContact: NewCreateContactExecutor(svc),
		BuiltinUpdateContact: NewUpdateContactExecutor(svc),
		BuiltinDeleteContact: NewDeleteContactExecutor(svc),
	}
	for _, def := range BuiltinDefinitions() {
		if err := r.Register(def, executors[def.Name]); err != nil {
			return err
		}
	}
	return nil
}
