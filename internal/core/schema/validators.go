package schema

import (
	"math"
	"regexp"
	"strings"

	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	idRegexp   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	iconRegexp = regexp.MustCompile(`^[\w\-]+:[\w\-]+$`)
)

func scalar(path string, n *yaml.Node) (string, error) {
	n = Deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		kind := "nothing"
		if n != nil && n.Kind != yaml.ScalarNode {
			kind = kindName(n)
		}
		return "", domain.NewFieldError(domain.ErrFormat, path, "expected a value, got %s", kind)
	}
	return strings.TrimSpace(n.Value), nil
}

// ParseInt reads an integer scalar. Hex (0x6B) and octal literals are accepted.
func ParseInt(path string, n *yaml.Node) (int64, error) {
	s, err := scalar(path, n)
	if err != nil {
		return 0, err
	}
	i, err := cast.ToInt64E(s)
	if err != nil {
		return 0, domain.NewFieldError(domain.ErrFormat, path, "expected an integer, got %q", s)
	}
	return i, nil
}

func ParseFloat(path string, n *yaml.Node) (float64, error) {
	s, err := scalar(path, n)
	if err != nil {
		return 0, err
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, domain.NewFieldError(domain.ErrFormat, path, "expected a number, got %q", s)
	}
	return f, nil
}

// IntRange accepts integers within [min, max].
func IntRange(min, max int64) Validator {
	return func(path string, n *yaml.Node) (any, error) {
		i, err := ParseInt(path, n)
		if err != nil {
			return nil, err
		}
		if i < min || i > max {
			return nil, domain.NewFieldError(domain.ErrRange, path, "value %d must be in range [%d, %d]", i, min, max)
		}
		return i, nil
	}
}

// FloatRange accepts numbers within [min, max].
func FloatRange(min, max float64) Validator {
	return func(path string, n *yaml.Node) (any, error) {
		f, err := ParseFloat(path, n)
		if err != nil {
			return nil, err
		}
		if f < min || f > max {
			return nil, domain.NewFieldError(domain.ErrRange, path, "value %v must be in range [%v, %v]", f, min, max)
		}
		return f, nil
	}
}

// Enum accepts one of options. Input is upper- or lower-cased first when upper says so
// and the options follow that convention.
func Enum(upper bool, options ...string) Validator {
	return func(path string, n *yaml.Node) (any, error) {
		s, err := scalar(path, n)
		if err != nil {
			return nil, err
		}
		if upper {
			s = strings.ToUpper(s)
		} else {
			s = strings.ToLower(s)
		}
		for _, o := range options {
			if o == s {
				return s, nil
			}
		}
		return nil, domain.NewFieldError(domain.ErrEnum, path, "unknown value %q, valid values are %s", s, optionList(options))
	}
}

// Boolean accepts YAML booleans and the tokens true/false, yes/no, on/off.
func Boolean(path string, n *yaml.Node) (any, error) {
	s, err := scalar(path, n)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return nil, domain.NewFieldError(domain.ErrFormat, path, "expected a boolean, got %q", s)
}

// String accepts any scalar.
func String(path string, n *yaml.Node) (any, error) {
	s, err := scalar(path, n)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ID accepts identifiers usable as generated variable names.
func ID(path string, n *yaml.Node) (any, error) {
	s, err := scalar(path, n)
	if err != nil {
		return nil, err
	}
	if !idRegexp.MatchString(s) {
		return nil, domain.NewFieldError(domain.ErrFormat, path, "invalid id %q, can only contain letters, numbers and underscores and must not start with a number", s)
	}
	return s, nil
}

// Icon accepts icons in the <prefix>:<name> form, e.g. mdi:blur.
func Icon(path string, n *yaml.Node) (any, error) {
	s, err := scalar(path, n)
	if err != nil {
		return nil, err
	}
	if !iconRegexp.MatchString(s) {
		return nil, domain.NewFieldError(domain.ErrFormat, path, "invalid icon %q, expected <prefix>:<name>", s)
	}
	return s, nil
}
