package resolver

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
)

// Handle is a declared configuration object.
type Handle struct {
	ID   string
	Kind domain.EntityKind
	Path string
}

// Resolver maps configuration identifiers to declared objects.
// Every declaration must be made before the first Resolve call.
type Resolver struct {
	declared map[string]Handle
}

func NewResolver() *Resolver {
	return &Resolver{declared: map[string]Handle{}}
}

// Declare records an identifier. Declaring the same identifier twice is an error.
func (r *Resolver) Declare(id string, kind domain.EntityKind, path string) error {
	if prev, ok := r.declared[id]; ok {
		return domain.NewFieldError(domain.ErrDuplicateIdentifier, path, "id %q is already declared at %s", id, prev.Path)
	}
	r.declared[id] = Handle{ID: id, Kind: kind, Path: path}
	return nil
}

// Resolve looks up an identifier that must have been declared with the expected kind.
// path is the location of the reference, used in errors.
func (r *Resolver) Resolve(id string, expected domain.EntityKind, path string) (Handle, error) {
	h, ok := r.declared[id]
	if !ok {
		return Handle{}, domain.NewFieldError(domain.ErrUnresolvedReference, path, "couldn't find id %q", id)
	}
	if h.Kind != expected {
		return Handle{}, domain.NewFieldError(domain.ErrKindMismatch, path, "id %q is a %s, expected a %s", id, h.Kind, expected)
	}
	return h, nil
}

func (r *Resolver) Len() int {
	return len(r.declared)
}
