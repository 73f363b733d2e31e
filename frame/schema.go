package frame

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// Field is one (name, element type) entry of a schema.
type Field struct {
	Name string
	Type DataType
}

// Schema is the ordered list of column names and types of a table.
type Schema []Field

// Schema returns a read-only description of the columns.
func (t *Table) Schema() Schema {
	s := make(Schema, len(t.columns))
	for i, c := range t.columns {
		s[i] = Field{Name: c.Name(), Type: c.Type()}
	}
	return s
}

func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// logicalTypeKey records the engine type on arrow fields whose arrow type
// alone does not identify it.
const logicalTypeKey = "colframe.type"

// Arrow converts the schema to an arrow schema. Every field is nullable.
// Decimals travel as strings and chars as int32 code points, both tagged
// with their engine type in the field metadata.
func (s Schema) Arrow() *arrow.Schema {
	fields := make([]arrow.Field, len(s))
	for i, f := range s {
		fields[i] = arrow.Field{Name: f.Name, Type: arrowType(f.Type), Nullable: true}
		if f.Type == Decimal || f.Type == Char {
			fields[i].Metadata = arrow.NewMetadata([]string{logicalTypeKey}, []string{f.Type.String()})
		}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(dt DataType) arrow.DataType {
	switch dt {
	case Int8:
		return arrow.PrimitiveTypes.Int8
	case Int16:
		return arrow.PrimitiveTypes.Int16
	case Int32, Char:
		return arrow.PrimitiveTypes.Int32
	case Int64:
		return arrow.PrimitiveTypes.Int64
	case UInt8:
		return arrow.PrimitiveTypes.Uint8
	case UInt16:
		return arrow.PrimitiveTypes.Uint16
	case UInt32:
		return arrow.PrimitiveTypes.Uint32
	case UInt64:
		return arrow.PrimitiveTypes.Uint64
	case Float32:
		return arrow.PrimitiveTypes.Float32
	case Float64:
		return arrow.PrimitiveTypes.Float64
	case Boolean:
		return arrow.FixedWidthTypes.Boolean
	case DateTime:
		return arrow.FixedWidthTypes.Timestamp_ns
	default:
		return arrow.BinaryTypes.String
	}
}
