package types

import "github.com/m-mizutani/goerr/v2"

// Method identifies a risk scoring model
type Method string

const (
	MethodRPN      Method = "RPN"
	MethodWeighted Method = "WEIGHTED"
)

// AllMethods returns all supported scoring methods in catalog order
func AllMethods() []Method {
	return []Method{
		MethodRPN,
		MethodWeighted,
	}
}

// IsValid checks if the method is supported
func (m Method) IsValid() bool {
	switch m {
	case MethodRPN,
		MethodWeighted:
		return true
	default:
		return false
	}
}

// RequiresExposure reports whether the method consumes the exposure factor
func (m Method) RequiresExposure() bool {
	switch m {
	case MethodWeighted:
		return true
	case MethodRPN:
		return false
	default:
		return false
	}
}

// String returns the string representation of the method
func (m Method) String() string {
	return string(m)
}

// ParseMethod parses a string into a Method. Matching is case-sensitive.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.IsValid() {
		return "", goerr.New("unsupported method", goerr.V("method", s))
	}
	return m, nil
}
