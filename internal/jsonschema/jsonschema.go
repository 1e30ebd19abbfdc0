package jsonschema

// Schema is the generic, JSON-Schema-like shape callers use to declare
// function-tool parameters. It deliberately covers only the subset every
// vendor dialect can express; adapters translate it into their vendor's
// native tool declaration (see each provider's conversion layer).
type Schema struct {
	// Type specifies the data type ("object", "array", "string", "number",
	// "integer", "boolean").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object-typed schema, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items defines the element schema of an array-typed schema.
	Items *Schema `json:"items,omitempty"`
	// Enum lists the allowed values for the parameter.
	Enum []any `json:"enum,omitempty"`
	// Default value for the parameter.
	Default any `json:"default,omitempty"`
}

// Object is a convenience constructor for an object schema with the given
// properties and required list.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: properties, Required: required}
}

// String returns a string schema with an optional description.
func String(description string) *Schema {
	return &Schema{Type: "string", Description: description}
}
