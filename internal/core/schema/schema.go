package schema

import (
	"sort"
	"strings"

	"github.com/berfenger/sen6xgen/internal/core/domain"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Validator checks one configuration value and returns its normalized form.
type Validator func(path string, n *yaml.Node) (any, error)

type Field struct {
	Key      string
	Required bool
	// Default is the normalized value used when the key is absent. nil means no default.
	Default any
	Check   Validator
}

// Schema is an ordered set of fields accepted by a mapping.
type Schema struct {
	Fields []Field
}

func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Keys returns the accepted option names in declaration order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Extend returns a schema with the given fields appended.
func (s Schema) Extend(fields ...Field) Schema {
	out := make([]Field, 0, len(s.Fields)+len(fields))
	out = append(out, s.Fields...)
	out = append(out, fields...)
	return Schema{Fields: out}
}

// Validate checks every entry of a mapping and collects all violations.
// Unknown keys are reported as enum errors listing the permitted options.
func (s Schema) Validate(path string, n *yaml.Node) (Values, error) {
	values := Values{values: map[string]any{}}
	pairs, err := Pairs(path, n)
	if err != nil {
		return values, err
	}

	var errs error
	seen := map[string]bool{}
	for _, p := range pairs {
		fieldPath := Key(path, p.Key)
		f, ok := s.Field(p.Key)
		if !ok {
			errs = multierr.Append(errs, domain.NewFieldError(domain.ErrEnum, fieldPath,
				"unknown option %q, valid options are %s", p.Key, optionList(s.Keys())))
			continue
		}
		if seen[p.Key] {
			errs = multierr.Append(errs, domain.NewFieldError(domain.ErrFormat, fieldPath, "option given more than once"))
			continue
		}
		seen[p.Key] = true
		v, err := f.Check(fieldPath, p.Value)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		values.order = append(values.order, p.Key)
		values.values[p.Key] = v
	}

	for _, f := range s.Fields {
		if seen[f.Key] {
			continue
		}
		if f.Required {
			errs = multierr.Append(errs, domain.NewFieldError(domain.ErrMissingRequiredField, Key(path, f.Key), "required option is missing"))
			continue
		}
		if f.Default != nil {
			values.values[f.Key] = f.Default
		}
	}
	return values, errs
}

func optionList(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return "[" + strings.Join(sorted, ", ") + "]"
}

// Nested validates a sub-mapping with its own schema. A null value is treated as an empty mapping.
func Nested(s Schema) Validator {
	return func(path string, n *yaml.Node) (any, error) {
		v, err := s.Validate(path, n)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Values holds the normalized result of a schema validation.
type Values struct {
	order  []string
	values map[string]any
}

// Has reports whether the key was given explicitly.
func (v Values) Has(key string) bool {
	for _, k := range v.order {
		if k == key {
			return true
		}
	}
	return false
}

// Keys returns the explicitly given keys in document order.
func (v Values) Keys() []string {
	return v.order
}

func (v Values) Get(key string) (any, bool) {
	val, ok := v.values[key]
	return val, ok
}

func (v Values) String(key string) string {
	s, _ := v.values[key].(string)
	return s
}

func (v Values) Int(key string) int64 {
	i, _ := v.values[key].(int64)
	return i
}

func (v Values) Float(key string) float64 {
	f, _ := v.values[key].(float64)
	return f
}

func (v Values) Bool(key string) bool {
	b, _ := v.values[key].(bool)
	return b
}

func (v Values) Map(key string) Values {
	m, ok := v.values[key].(Values)
	if !ok {
		return Values{values: map[string]any{}}
	}
	return m
}
