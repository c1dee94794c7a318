package types

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ColumnType names one of the supported column value types.
type ColumnType string

// Supported column types. The set is closed; there is no runtime
// registration.
const (
	TypeInteger        ColumnType = "Integer"
	TypeReal           ColumnType = "Real"
	TypeChar           ColumnType = "Char"
	TypeString         ColumnType = "String"
	TypeHTMLFile       ColumnType = "HtmlFile"
	TypeStringInterval ColumnType = "StringInterval"
)

// typeOps bundles the per-type behavior the registry dispatches on:
// validation of raw input, decoding of canonical text, and ordering.
type typeOps struct {
	validate func(raw any) (Value, error)
	decode   func(s string) (Value, error)
	compare  func(a, b Value) int
}

var registry = map[ColumnType]typeOps{
	TypeInteger: {
		validate: validateInteger,
		decode:   decodeInteger,
		compare:  func(a, b Value) int { return cmp.Compare(a.i, b.i) },
	},
	TypeReal: {
		validate: validateReal,
		decode:   decodeReal,
		compare:  func(a, b Value) int { return cmp.Compare(a.f, b.f) },
	},
	TypeChar: {
		validate: validateChar,
		decode:   decodeChar,
		compare:  compareText,
	},
	TypeString: {
		validate: validateString,
		decode:   func(s string) (Value, error) { return StringValue(s), nil },
		compare:  compareText,
	},
	TypeHTMLFile: {
		validate: validateHTML,
		decode:   decodeHTML,
		compare:  compareText,
	},
	TypeStringInterval: {
		validate: validateInterval,
		decode:   decodeInterval,
		compare:  compareInterval,
	},
}

// IsValidType reports whether t is a supported column type.
func IsValidType(t ColumnType) bool {
	_, ok := registry[t]
	return ok
}

// ColumnTypes returns the supported column types in declaration order.
func ColumnTypes() []ColumnType {
	return []ColumnType{
		TypeInteger, TypeReal, TypeChar,
		TypeString, TypeHTMLFile, TypeStringInterval,
	}
}

// ParseValue validates raw input against the given column type and returns
// the canonical Value. Raw input is typically a string token in the type's
// canonical encoding; Integer and Real also accept native Go numbers, and
// StringInterval accepts an Interval or a map with "low" and "high" keys.
// An already-constructed Value passes through after a type check, so decoded
// persistence data and fresh user input share one validation path.
func ParseValue(t ColumnType, raw any) (Value, error) {
	ops, ok := registry[t]
	if !ok {
		return Value{}, fmt.Errorf("unknown column type %q", t)
	}
	if v, isValue := raw.(Value); isValue {
		if v.kind != t {
			return Value{}, fmt.Errorf("value has type %s, want %s", v.kind, t)
		}
		return v, nil
	}
	return ops.validate(raw)
}

// FromCanonicalText decodes the textual encoding produced by
// Value.CanonicalText. Decoding a canonical encoding always yields a Value
// equal to the one that produced it.
func FromCanonicalText(t ColumnType, s string) (Value, error) {
	ops, ok := registry[t]
	if !ok {
		return Value{}, fmt.Errorf("unknown column type %q", t)
	}
	return ops.decode(s)
}

func validateInteger(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return decodeInteger(v)
	case int:
		return IntegerValue(int64(v)), nil
	case int32:
		return IntegerValue(int64(v)), nil
	case int64:
		return IntegerValue(v), nil
	case float64:
		// JSON numbers arrive as float64. Accept only exact whole values
		// within int64 range.
		if math.Trunc(v) != v || v < math.MinInt64 || v >= math.MaxInt64 {
			return Value{}, fmt.Errorf("number %v is not a valid integer", v)
		}
		return IntegerValue(int64(v)), nil
	default:
		return Value{}, fmt.Errorf("expected integer, got %T", raw)
	}
}

func decodeInteger(s string) (Value, error) {
	if s == "" {
		return Value{}, errors.New("integer must not be empty")
	}
	if strings.HasPrefix(s, "+") {
		return Value{}, fmt.Errorf("invalid integer %q", s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("integer %q overflows 64 bits", s)
		}
		return Value{}, fmt.Errorf("invalid integer %q", s)
	}
	return IntegerValue(n), nil
}

func validateReal(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return decodeReal(v)
	case float64:
		return RealValue(v)
	case float32:
		return RealValue(float64(v))
	case int:
		return RealValue(float64(v))
	case int64:
		return RealValue(float64(v))
	default:
		return Value{}, fmt.Errorf("expected real number, got %T", raw)
	}
}

func decodeReal(s string) (Value, error) {
	if s == "" {
		return Value{}, errors.New("real must not be empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid real %q", s)
	}
	// ParseFloat accepts "NaN" and "Inf" tokens and maps huge inputs to
	// infinity; none of these are storable values.
	return RealValue(f)
}

func validateChar(raw any) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, fmt.Errorf("expected single character, got %T", raw)
	}
	return decodeChar(s)
}

func decodeChar(s string) (Value, error) {
	return CharValue(s)
}

func validateString(raw any) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, fmt.Errorf("expected string, got %T", raw)
	}
	return StringValue(s), nil
}

func validateHTML(raw any) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, fmt.Errorf("expected HTML content, got %T", raw)
	}
	return decodeHTML(s)
}

func decodeHTML(s string) (Value, error) {
	return HTMLValue(s)
}

func validateInterval(raw any) (Value, error) {
	switch v := raw.(type) {
	case Interval:
		return IntervalValue(v.Low, v.High)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return intervalFromMap(m)
	case map[string]any:
		return intervalFromMap(v)
	case string:
		return decodeInterval(v)
	default:
		return Value{}, fmt.Errorf("expected interval, got %T", raw)
	}
}

func intervalFromMap(m map[string]any) (Value, error) {
	low, err := intervalSide(m, "low")
	if err != nil {
		return Value{}, err
	}
	high, err := intervalSide(m, "high")
	if err != nil {
		return Value{}, err
	}
	return IntervalValue(low, high)
}

func intervalSide(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", fmt.Errorf("interval is missing %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("interval %q must be a string, got %T", key, raw)
	}
	return s, nil
}

// decodeInterval parses the canonical JSON object form {"low":...,"high":...}.
func decodeInterval(s string) (Value, error) {
	var pair struct {
		Low  *string `json:"low"`
		High *string `json:"high"`
	}
	if err := json.Unmarshal([]byte(s), &pair); err != nil {
		return Value{}, fmt.Errorf("invalid interval %q", s)
	}
	if pair.Low == nil {
		return Value{}, errors.New(`interval is missing "low"`)
	}
	if pair.High == nil {
		return Value{}, errors.New(`interval is missing "high"`)
	}
	return IntervalValue(*pair.Low, *pair.High)
}

func compareText(a, b Value) int {
	return strings.Compare(a.s, b.s)
}

// compareInterval orders by low, tie-broken by high. Intervals have no
// single natural scalar, so pair order is the sort key.
func compareInterval(a, b Value) int {
	if c := strings.Compare(a.low, b.low); c != 0 {
		return c
	}
	return strings.Compare(a.high, b.high)
}
