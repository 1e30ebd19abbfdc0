// Package jsonschema defines the small, vendor-neutral schema type used to
// describe function-tool parameters. It intentionally avoids depending on a
// full JSON Schema library: the adapter layer only needs a tagged
// object/array/primitive shape that each vendor dialect can be derived from.
package jsonschema
