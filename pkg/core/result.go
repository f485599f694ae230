package core

import (
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

// Value variants.
const (
	ValueNull ValueKind = iota
	ValueNumber
	ValueText
)

// Value is a single result cell: null, number or text.
// Numbers keep their integer form when the driver returned one.
type Value struct {
	Kind  ValueKind
	Float float64
	Int   int64
	IsInt bool
	Text  string
}

// Null returns the null value.
func Null() Value { return Value{Kind: ValueNull} }

// IntValue returns an integer number value.
func IntValue(i int64) Value { return Value{Kind: ValueNumber, Int: i, Float: float64(i), IsInt: true} }

// FloatValue returns a floating point number value.
func FloatValue(f float64) Value { return Value{Kind: ValueNumber, Float: f} }

// TextValue returns a text value.
func TextValue(s string) Value { return Value{Kind: ValueText, Text: s} }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.Kind == ValueNull }

// IsNumber reports whether v is numeric.
func (v Value) IsNumber() bool { return v.Kind == ValueNumber }

// String renders the value without any formatting. Null renders as "".
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		if v.IsInt {
			return strconv.FormatInt(v.Int, 10)
		}
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case ValueText:
		return v.Text
	default:
		return ""
	}
}

// Any returns v as a plain Go value: nil, int64, float64 or string.
func (v Value) Any() any {
	switch v.Kind {
	case ValueNumber:
		if v.IsInt {
			return v.Int
		}
		return v.Float
	case ValueText:
		return v.Text
	default:
		return nil
	}
}

// float64er is implemented by driver decimal types (e.g. duckdb.Decimal).
type float64er interface {
	Float64() float64
}

// NewValue converts a value scanned by database/sql into a Value.
func NewValue(src any) Value {
	switch v := src.(type) {
	case nil:
		return Null()
	case int64:
		return IntValue(v)
	case int:
		return IntValue(int64(v))
	case int32:
		return IntValue(int64(v))
	case int16:
		return IntValue(int64(v))
	case int8:
		return IntValue(int64(v))
	case uint8:
		return IntValue(int64(v))
	case uint16:
		return IntValue(int64(v))
	case uint32:
		return IntValue(int64(v))
	case uint64:
		if v > 1<<63-1 {
			return FloatValue(float64(v))
		}
		return IntValue(int64(v)) //nolint:gosec // bounds checked above
	case uint:
		return NewValue(uint64(v))
	case float64:
		return FloatValue(v)
	case float32:
		return FloatValue(float64(v))
	case bool:
		return TextValue(strconv.FormatBool(v))
	case []byte:
		return TextValue(string(v))
	case string:
		return TextValue(v)
	case time.Time:
		return TextValue(formatTime(v))
	case *big.Int:
		if v == nil {
			return Null()
		}
		if v.IsInt64() {
			return IntValue(v.Int64())
		}
		return TextValue(v.String())
	case float64er:
		return FloatValue(v.Float64())
	case fmt.Stringer:
		return TextValue(v.String())
	default:
		return TextValue(fmt.Sprintf("%v", v))
	}
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}

// ResultTable is the tabular output of one query.
// Column and row order are exactly the order the backend returned.
type ResultTable struct {
	Columns []string
	Rows    [][]Value
}

// ColumnIndex returns the position of the named column, or -1.
func (t *ResultTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
