package frame

import "fmt"

// DataType identifies a column element type using bit-packed encoding.
// The high 16 bits carry the type family, the low 16 bits the member.
type DataType uint32

// Type families (high 16 bits)
const (
	FamilyInteger  = 0x0000_0000 // 0x0000_XXXX
	FamilyFloat    = 0x0001_0000 // 0x0001_XXXX
	FamilyString   = 0x0002_0000 // 0x0002_XXXX
	FamilyTemporal = 0x0003_0000 // 0x0003_XXXX
	FamilyBoolean  = 0x0004_0000 // 0x0004_XXXX
	FamilyDecimal  = 0x0005_0000 // 0x0005_XXXX
	FamilyChar     = 0x0006_0000 // 0x0006_XXXX

	familyMask = 0xFFFF_0000
)

// DataType constants using bit-packed encoding.
// Integer members are numbered by promotion rank.
const (
	// Integer types (0x0000_XXXX)
	Int8   DataType = FamilyInteger | 0x0001
	UInt8  DataType = FamilyInteger | 0x0002
	Int16  DataType = FamilyInteger | 0x0003
	UInt16 DataType = FamilyInteger | 0x0004
	Int32  DataType = FamilyInteger | 0x0005
	UInt32 DataType = FamilyInteger | 0x0006
	Int64  DataType = FamilyInteger | 0x0007
	UInt64 DataType = FamilyInteger | 0x0008

	// Float types (0x0001_XXXX)
	Float32 DataType = FamilyFloat | 0x0001
	Float64 DataType = FamilyFloat | 0x0002

	// String types (0x0002_XXXX)
	String      DataType = FamilyString | 0x0001
	ArrowString DataType = FamilyString | 0x0002 // immutable, buffer backed

	// Temporal types (0x0003_XXXX)
	DateTime DataType = FamilyTemporal | 0x0001

	// Boolean (0x0004_XXXX)
	Boolean DataType = FamilyBoolean | 0x0001

	// Decimal (0x0005_XXXX)
	Decimal DataType = FamilyDecimal | 0x0001

	// Char (0x0006_XXXX)
	Char DataType = FamilyChar | 0x0001
)

// Family returns the family bits of the type.
func (t DataType) Family() uint32 {
	return uint32(t) & familyMask
}

func (t DataType) member() uint32 {
	return uint32(t) &^ familyMask
}

// IsInteger reports whether t is one of the eight integer types.
func (t DataType) IsInteger() bool {
	return t.Family() == FamilyInteger && t.member() >= 1 && t.member() <= 8
}

// IsSigned reports whether t is a signed integer or a float.
func (t DataType) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	}
	return false
}

// IsFloat reports whether t is Float32 or Float64.
func (t DataType) IsFloat() bool {
	return t.Family() == FamilyFloat
}

// IsNumeric reports whether t takes part in arithmetic: integers, floats and decimal.
func (t DataType) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat() || t == Decimal
}

// IsText reports whether t is one of the two text representations.
func (t DataType) IsText() bool {
	return t.Family() == FamilyString
}

// String returns the short type name used in schema output.
func (t DataType) String() string {
	switch t {
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Int32:
		return "i32"
	case Int64:
		return "i64"
	case UInt8:
		return "u8"
	case UInt16:
		return "u16"
	case UInt32:
		return "u32"
	case UInt64:
		return "u64"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	case Decimal:
		return "decimal"
	case Boolean:
		return "bool"
	case Char:
		return "char"
	case DateTime:
		return "datetime"
	case String:
		return "str"
	case ArrowString:
		return "arrow_str"
	default:
		return fmt.Sprintf("unknown(0x%08X)", uint32(t))
	}
}
