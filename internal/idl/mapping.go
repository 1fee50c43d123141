package idl

import "github.com/eventline-labs/eventc/pkg/spec"

// capnpScalar maps a specification type/format pair to a Cap'n Proto type.
// The table is fixed: changing it changes the wire contract of every
// generated client.
//
//	string            -> Text
//	string+timestamp  -> Common.Timestamp (seconds, nanos)
//	string+uuid       -> Data (16-byte blob)
//	string+binary     -> Data
//	integer, int64    -> Int64
//	number, float(64) -> Float64
//	boolean           -> Bool
//	null              -> Void
//	object, unknown   -> Data (opaque, encoded out-of-band)
func capnpScalar(typ, format string) string {
	switch typ {
	case spec.TypeString:
		switch format {
		case "timestamp", "date-time":
			return "Common.Timestamp"
		case "uuid", "binary", "byte":
			return "Data"
		default:
			return "Text"
		}
	case spec.TypeInteger, "int64":
		return "Int64"
	case spec.TypeNumber, "float", "float64":
		return "Float64"
	case spec.TypeBoolean:
		return "Bool"
	case spec.TypeNull:
		return "Void"
	default:
		return "Data"
	}
}

// capnpSchemaType maps a full schema to a Cap'n Proto type. Arrays become
// List(T) of the item type; nested arrays nest the List.
func capnpSchemaType(s *spec.SchemaSpec) string {
	switch s.Type {
	case spec.TypeArray:
		return "List(" + capnpSchemaType(s.Items) + ")"
	case spec.TypeObject:
		return "Data"
	default:
		return capnpScalar(s.Type, s.Format)
	}
}

// capnpPropertyType maps an object property to a Cap'n Proto type.
// Properties carry no item schema, so array- and object-typed properties are
// opaque Data the caller encodes out-of-band.
func capnpPropertyType(p *spec.PropertySpec) string {
	switch p.Type {
	case spec.TypeArray, spec.TypeObject:
		return "Data"
	default:
		return capnpScalar(p.Type, p.Format)
	}
}
