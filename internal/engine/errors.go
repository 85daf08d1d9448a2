package engine

import (
	"errors"
	"fmt"
)

// BuildError represents an error detected while constructing a circuit.
//
// Construction errors are fatal to the current build attempt; no
// partial or rollback state is guaranteed. Stepping never raises:
// numeric degeneracy is masked inside the primitives so Step always
// produces a finite value.
type BuildError struct {
	// Code identifies the error category.
	Code BuildErrorCode

	// Message is a human-readable description.
	Message string

	// Component names the component involved, if any.
	Component string

	// Port names the port involved, if any.
	Port string

	// Instance names the subcircuit instance involved, if any.
	Instance string
}

// BuildErrorCode categorizes construction errors.
type BuildErrorCode string

const (
	// ErrCodeUnknownType indicates a type name not present in the registry.
	ErrCodeUnknownType BuildErrorCode = "UNKNOWN_TYPE"

	// ErrCodeUnknownComponent indicates a reference to a component that
	// does not exist in the relevant namespace.
	ErrCodeUnknownComponent BuildErrorCode = "UNKNOWN_COMPONENT"

	// ErrCodeUnknownPort indicates a reference to a port the named
	// component does not expose.
	ErrCodeUnknownPort BuildErrorCode = "UNKNOWN_PORT"

	// ErrCodeMalformedReference indicates a port reference that does not
	// split into exactly two non-empty segments.
	ErrCodeMalformedReference BuildErrorCode = "MALFORMED_REFERENCE"

	// ErrCodeDuplicateRegistration indicates registration of a type name
	// that is already present.
	ErrCodeDuplicateRegistration BuildErrorCode = "DUPLICATE_REGISTRATION"

	// ErrCodePortMapping indicates a subcircuit exposed port found in
	// neither the explicit map nor the implicit name scan.
	ErrCodePortMapping BuildErrorCode = "PORT_MAPPING"

	// ErrCodeTemplateCycle indicates a subcircuit template expansion
	// that re-enters a template already being expanded.
	ErrCodeTemplateCycle BuildErrorCode = "TEMPLATE_CYCLE"

	// ErrCodeBadParam indicates a component parameter that is missing,
	// unknown, or of the wrong shape.
	ErrCodeBadParam BuildErrorCode = "BAD_PARAM"
)

// Error implements the error interface.
func (e *BuildError) Error() string {
	switch {
	case e.Component != "" && e.Port != "":
		return fmt.Sprintf("%s: %s (component=%s, port=%s)", e.Code, e.Message, e.Component, e.Port)
	case e.Instance != "":
		return fmt.Sprintf("%s: %s (instance=%s)", e.Code, e.Message, e.Instance)
	case e.Component != "":
		return fmt.Sprintf("%s: %s (component=%s)", e.Code, e.Message, e.Component)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsBuildError reports whether err is a BuildError with the given code.
// Uses errors.As to handle wrapped errors.
func IsBuildError(err error, code BuildErrorCode) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// NewUnknownTypeError creates a BuildError for an unregistered type name.
func NewUnknownTypeError(typeName string) *BuildError {
	return &BuildError{
		Code:    ErrCodeUnknownType,
		Message: fmt.Sprintf("type %q is not a registered component or subcircuit", typeName),
	}
}

// NewUnknownComponentError creates a BuildError for an unresolvable
// component reference.
func NewUnknownComponentError(name string) *BuildError {
	return &BuildError{
		Code:      ErrCodeUnknownComponent,
		Message:   "component not found",
		Component: name,
	}
}

// NewUnknownPortError creates a BuildError for a port the component does
// not expose. dir is "input" or "output".
func NewUnknownPortError(component, port, dir string) *BuildError {
	return &BuildError{
		Code:      ErrCodeUnknownPort,
		Message:   fmt.Sprintf("component has no %s port", dir),
		Component: component,
		Port:      port,
	}
}

// NewMalformedReferenceError creates a BuildError for an unparseable
// "component.port" reference.
func NewMalformedReferenceError(ref string) *BuildError {
	return &BuildError{
		Code:    ErrCodeMalformedReference,
		Message: fmt.Sprintf("invalid port reference %q, expected \"component.port\"", ref),
	}
}
