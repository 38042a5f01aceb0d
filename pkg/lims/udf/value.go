package udf

import (
	"fmt"
	"strconv"
	"time"

	"github.com/openlims/lims-client/pkg/lims/errors"
)

// Kind is the type tag stored on a user defined field element. The set is
// closed; anything else in a response is rejected on write.
type Kind string

const (
	KindString  Kind = "String"
	KindText    Kind = "Text"
	KindNumeric Kind = "Numeric"
	KindBoolean Kind = "Boolean"
	KindDate    Kind = "Date"
)

// Value is one user defined field value, tagged with its kind. The zero
// Value represents an absent or empty field.
type Value struct {
	kind      Kind
	text      string
	number    float64
	integer   int64
	isInteger bool
	boolean   bool
	date      time.Time
}

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

func Number(f float64) Value {
	return Value{kind: KindNumeric, number: f}
}

func Integer(i int64) Value {
	return Value{kind: KindNumeric, number: float64(i), integer: i, isInteger: true}
}

func Boolean(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsZero() bool { return v.kind == "" }

// AsString returns the raw text for String and Text values, and the wire
// representation for everything else.
func (v Value) AsString() string {
	if v.kind == KindString || v.kind == KindText {
		return v.text
	}
	return v.wireText()
}

func (v Value) AsFloat() float64 { return v.number }

func (v Value) AsInt() (int64, bool) { return v.integer, v.isInteger }

func (v Value) AsBool() bool { return v.boolean }

func (v Value) AsDate() time.Time { return v.date }

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindString, KindText:
		return v.text == other.text
	case KindNumeric:
		return v.number == other.number
	case KindBoolean:
		return v.boolean == other.boolean
	case KindDate:
		return v.date.Format(dateLayout) == other.date.Format(dateLayout)
	}

	return true
}

func (v Value) String() string {
	return v.AsString()
}

const dateLayout = "2006-01-02"

// wireText encodes the value to the text representation stored in the
// field element.
func (v Value) wireText() string {
	switch v.kind {
	case KindString, KindText:
		return v.text
	case KindNumeric:
		if v.isInteger {
			return strconv.FormatInt(v.integer, 10)
		}
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	case KindDate:
		return v.date.Format(dateLayout)
	}

	return ""
}

// decode turns the stored text of a field element back into a Value,
// selected by the element's type tag. Numeric text decodes to an integer
// when that is lossless.
func decode(typeTag, text string) (Value, error) {
	if text == "" {
		return Value{}, nil
	}

	switch typeTag {
	case "numeric":
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Integer(i), nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid numeric field value %q (%w)", text, errors.ErrBadResponse)
		}
		return Number(f), nil
	case "boolean":
		return Boolean(text == "true"), nil
	case "date":
		t, err := time.Parse(dateLayout, text)
		if err != nil {
			return Value{}, fmt.Errorf("invalid date field value %q (%w)", text, errors.ErrBadResponse)
		}
		return Date(t), nil
	case "text":
		return Text(text), nil
	}

	return String(text), nil
}
