// Package schema provides the writer schema model used to walk binary
// encoded values.
//
// A Schema is a closed set of variants: *Primitive, *Fixed, *Enum, *Array,
// *Map, *Union, *Record and *Link. Link is the indirection used for named
// type references and is what makes recursive schemas representable.
//
// Schemas are usually obtained with Parse, which accepts the JSON schema
// notation (and, JSON being a subset of YAML, YAML as well):
//
//	s, err := schema.Parse([]byte(`{
//	    "type": "record", "name": "Node",
//	    "fields": [
//	        {"name": "value", "type": "long"},
//	        {"name": "next", "type": ["null", "Node"]}
//	    ]
//	}`))
//
// Here the "Node" reference inside the union is a *Link whose Target is the
// enclosing *Record.
package schema
