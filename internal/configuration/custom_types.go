package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// RuleArrow separates antecedents from consequents in the short rule notation
const RuleArrow = "->"

// Optional is a generic container for optional configuration values.
type Optional[T any] struct {
	// Value holds the actual as unmarshalled.
	Value T
	// Present indicates if the value was present in the configuration.
	Present bool
	// RuntimeOverride indicates if the value was overridden at runtime.
	RuntimeOverride bool
}

func (o *Optional[T]) Get() T {
	return o.Value
}

// SetOverride sets the value and marks it as overridden at runtime.
func (o *Optional[T]) SetOverride(value T) {
	o.RuntimeOverride = true
	o.Value = value
}

// DefaultTrueBool is a boolean type that defaults to true if not present and not overridden.
type DefaultTrueBool struct {
	Optional[bool]
}

func (b *DefaultTrueBool) Get() bool {
	if !b.Present && !b.RuntimeOverride {
		return true
	}
	return b.Value
}

// ParseRule parses the short rule notation "NL ZE -> PL"
func ParseRule(text string) (RuleConfig, error) {
	left, right, found := strings.Cut(text, RuleArrow)
	if !found {
		return RuleConfig{}, fmt.Errorf("rule '%s': missing '%s'", text, RuleArrow)
	}
	rule := RuleConfig{
		If:   strings.Fields(left),
		Then: strings.Fields(right),
	}
	if len(rule.If) <= 0 {
		return RuleConfig{}, fmt.Errorf("rule '%s': no antecedents", text)
	}
	if len(rule.Then) <= 0 {
		return RuleConfig{}, fmt.Errorf("rule '%s': no consequents", text)
	}
	return rule, nil
}

func (r RuleConfig) String() string {
	return strings.Join(r.If, " ") + " " + RuleArrow + " " + strings.Join(r.Then, " ")
}

// ParsePoints parses "a b c d" or "a,b,c,d"
func ParsePoints(text string) (PointsConfig, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	values := make([]interface{}, len(fields))
	for i, field := range fields {
		values[i] = field
	}
	return parsePointList(values)
}

func parsePointList(values []interface{}) (PointsConfig, error) {
	var result PointsConfig
	if len(values) != len(result) {
		return result, fmt.Errorf("expected %d points, got %d", len(result), len(values))
	}
	for i, value := range values {
		point, err := anyToInt(value)
		if err != nil {
			return result, fmt.Errorf("point %d: %w", i+1, err)
		}
		result[i] = point
	}
	return result, nil
}

// anyToInt converts numeric and string values to int.
func anyToInt(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("%v is not an integer", val)
		}
		return int(val), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as int: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

// pointsHookFunc decodes membership function points given either as a list
// or as a single string.
func pointsHookFunc() mapstructure.DecodeHookFuncType {
	pointsType := reflect.TypeOf(PointsConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != pointsType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParsePoints(v)
		case []interface{}:
			return parsePointList(v)
		case []int:
			values := make([]interface{}, len(v))
			for i := range v {
				values[i] = v[i]
			}
			return parsePointList(values)
		}
		return data, nil
	}
}

// ruleHookFunc decodes rules given in the short "A B -> C" notation,
// maps with "if" and "then" keys are left to the default decoder.
func ruleHookFunc() mapstructure.DecodeHookFuncType {
	ruleType := reflect.TypeOf(RuleConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != ruleType {
			return data, nil
		}
		if text, ok := data.(string); ok {
			return ParseRule(text)
		}
		return data, nil
	}
}

// DefaultTrueBoolHookFunc returns a mapstructure decode hook function for DefaultTrueBool.
func DefaultTrueBoolHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {

		if t != reflect.TypeOf(DefaultTrueBool{}) {
			return data, nil
		}

		var val bool
		switch v := data.(type) {
		case bool:
			val = v
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return data, nil
			}
			val = parsed
		default:
			return data, nil
		}

		return DefaultTrueBool{
			Optional: Optional[bool]{
				Value:   val,
				Present: true,
			},
		}, nil
	}
}
