package command

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/ggoodman/slashcmd-go/discord"
	"github.com/ggoodman/slashcmd-go/internal/validation"
)

// LiteralKind identifies the type of a metadata literal.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota + 1
	LiteralInteger
	LiteralNumber
	LiteralBool
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralInteger:
		return "integer"
	case LiteralNumber:
		return "float"
	case LiteralBool:
		return "bool"
	default:
		return "none"
	}
}

// Literal is a typed attribute value taken from command metadata: a string,
// integer, float or bool. The zero Literal holds nothing.
type Literal struct {
	kind LiteralKind
	s    string
	i    int64
	f    float64
	b    bool
}

func StringLit(s string) Literal   { return Literal{kind: LiteralString, s: s} }
func IntLit(i int64) Literal       { return Literal{kind: LiteralInteger, i: i} }
func NumberLit(f float64) Literal  { return Literal{kind: LiteralNumber, f: f} }
func BoolLit(b bool) Literal       { return Literal{kind: LiteralBool, b: b} }
func (l Literal) Kind() LiteralKind { return l.kind }
func (l Literal) IsZero() bool      { return l.kind == 0 }

// LiteralOf converts a scalar decoded from YAML or JSON into a Literal.
func LiteralOf(v any) (Literal, error) {
	switch x := v.(type) {
	case nil:
		return Literal{}, nil
	case Literal:
		return x, nil
	case string:
		return StringLit(x), nil
	case bool:
		return BoolLit(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntLit(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Literal{}, fmt.Errorf("command: invalid number literal %q", x)
		}
		return NumberLit(f), nil
	case float32:
		return NumberLit(float64(x)), nil
	case float64:
		return NumberLit(x), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntLit(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Literal{}, fmt.Errorf("command: integer literal %d overflows int64", u)
		}
		return IntLit(int64(u)), nil
	}
	return Literal{}, fmt.Errorf("command: unsupported literal type %T", v)
}

// ParseLiteral interprets attribute text: true/false become bools, integer
// and float syntax become numbers, quoted text is unquoted, anything else is
// a string.
func ParseLiteral(raw string) Literal {
	t := strings.TrimSpace(raw)
	switch t {
	case "true":
		return BoolLit(true)
	case "false":
		return BoolLit(false)
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return IntLit(i)
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return NumberLit(f)
	}
	if s, err := strconv.Unquote(t); err == nil {
		return StringLit(s)
	}
	return StringLit(raw)
}

func (l Literal) String() string {
	switch l.kind {
	case LiteralString:
		return strconv.Quote(l.s)
	case LiteralInteger:
		return strconv.FormatInt(l.i, 10)
	case LiteralNumber:
		return strconv.FormatFloat(l.f, 'g', -1, 64)
	case LiteralBool:
		return strconv.FormatBool(l.b)
	default:
		return "<none>"
	}
}

// Equal reports whether two literals have the same kind and value.
func (l Literal) Equal(o Literal) bool { return l == o }

// AsString returns a non-empty string literal.
func (l Literal) AsString(field, attr string) (string, error) {
	if l.kind != LiteralString {
		return "", wrongKind(field, attr, "string", l)
	}
	if strings.TrimSpace(l.s) == "" {
		return "", &AttributeError{Field: field, Attribute: attr, Reason: ReasonEmpty, Detail: "expected a non-empty string"}
	}
	return l.s, nil
}

// AsBool returns a bool literal.
func (l Literal) AsBool(field, attr string) (bool, error) {
	if l.kind != LiteralBool {
		return false, wrongKind(field, attr, "bool", l)
	}
	return l.b, nil
}

// AsNumericBound returns an integer or float literal as a min/max bound.
func (l Literal) AsNumericBound(field, attr string) (discord.Bound, error) {
	switch l.kind {
	case LiteralInteger:
		return discord.IntegerBound(l.i), nil
	case LiteralNumber:
		return discord.NumberBound(l.f), nil
	}
	return discord.Bound{}, wrongKind(field, attr, "integer or float", l)
}

// AsLength returns an integer literal usable as a string length bound.
func (l Literal) AsLength(field, attr string) (int, error) {
	if l.kind != LiteralInteger {
		return 0, wrongKind(field, attr, "integer", l)
	}
	if l.i < 0 || l.i > validation.MaxStringLength {
		return 0, &AttributeError{
			Field: field, Attribute: attr, Reason: ReasonOutOfRange,
			Detail: fmt.Sprintf("%d is outside 0..%d", l.i, validation.MaxStringLength),
		}
	}
	return int(l.i), nil
}

// AsChoiceValue returns a string, integer or float literal as a choice value.
func (l Literal) AsChoiceValue(field, attr string) (discord.ChoiceValue, error) {
	switch l.kind {
	case LiteralString:
		return discord.StringChoice(l.s), nil
	case LiteralInteger:
		return discord.IntegerChoice(l.i), nil
	case LiteralNumber:
		return discord.NumberChoice(l.f), nil
	}
	return discord.ChoiceValue{}, wrongKind(field, attr, "string, integer or float", l)
}

// literalFromChoice is the inverse of AsChoiceValue.
func literalFromChoice(v discord.ChoiceValue) Literal {
	if s, ok := v.Str(); ok {
		return StringLit(s)
	}
	if i, ok := v.Int(); ok {
		return IntLit(i)
	}
	f, _ := v.Float()
	return NumberLit(f)
}

func (l Literal) optionType() discord.OptionType {
	switch l.kind {
	case LiteralString:
		return discord.OptionTypeString
	case LiteralInteger:
		return discord.OptionTypeInteger
	case LiteralNumber:
		return discord.OptionTypeNumber
	}
	return 0
}

func wrongKind(field, attr, want string, got Literal) error {
	return &AttributeError{
		Field: field, Attribute: attr, Reason: ReasonWrongKind,
		Detail: fmt.Sprintf("expected %s, got %s", want, got.kind),
	}
}
