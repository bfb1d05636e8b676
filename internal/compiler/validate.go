package compiler

import (
	"fmt"
	"strings"
)

// Validation error codes (E100-E199)
const (
	// General validation errors (E100)
	ErrUnsupportedDeclType = "E100" // unsupported declaration type for validation

	// CategoryDecl errors (E101-E109)
	ErrCategoryNoObjects     = "E101" // objects list is empty
	ErrDuplicateObject       = "E102" // duplicate object name
	ErrUnknownEndpoint       = "E103" // morphism src/dst not a declared object
	ErrDanglingComposition   = "E104" // composition row names an undeclared morphism
	ErrDuplicateMorphism     = "E105" // duplicate morphism name
	ErrIdentityUnknownObject = "E106" // identity declared for an undeclared object

	// FunctorDecl errors (E110-E119)
	ErrUnknownCategoryRef = "E110" // source/target does not name a declared category
	ErrUnknownObjectRef   = "E111" // object map entry not in source/target objects
	ErrUnknownMorphismRef = "E112" // morphism map entry not a declared morphism
	ErrDuplicateDecl      = "E113" // duplicate category/functor declaration name
	ErrEmptyName          = "E114" // declaration or member name is empty
)

// ValidationError represents a declaration validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate validates a compiled declaration against structural rules.
// Returns all errors found (does not fail-fast). Supports
// CategoryDecl, FunctorDecl, and Decls. Functor cross references are
// only checkable at the Decls level, where the declared categories are
// in scope; the categorical laws themselves are checked later by the
// cat constructors.
func Validate(v any) []ValidationError {
	switch d := v.(type) {
	case *CategoryDecl:
		return validateCategoryDecl(d)
	case CategoryDecl:
		return validateCategoryDecl(&d)
	case *FunctorDecl:
		return validateFunctorDecl(d, nil)
	case FunctorDecl:
		return validateFunctorDecl(&d, nil)
	case *Decls:
		return validateDecls(d)
	case Decls:
		return validateDecls(&d)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported declaration type: %T", v),
			Code:    ErrUnsupportedDeclType,
		}}
	}
}

func validateCategoryDecl(d *CategoryDecl) []ValidationError {
	var errs []ValidationError

	// E101: a category needs at least one object
	if len(d.Objects) == 0 {
		errs = append(errs, ValidationError{
			Field:   "objects",
			Message: "a category requires at least one object",
			Code:    ErrCategoryNoObjects,
		})
	}

	objects := make(map[string]bool, len(d.Objects))
	for i, o := range d.Objects {
		if strings.TrimSpace(o) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("objects[%d]", i),
				Message: "object name must be non-empty",
				Code:    ErrEmptyName,
			})
			continue
		}
		// E102: duplicate object
		if objects[o] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("objects[%d]", i),
				Message: fmt.Sprintf("duplicate object %q", o),
				Code:    ErrDuplicateObject,
			})
		}
		objects[o] = true
	}

	morphisms := make(map[string]bool, len(d.Morphisms))
	for i, m := range d.Morphisms {
		// E105: duplicate morphism name
		if morphisms[m.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("morphisms[%d].name", i),
				Message: fmt.Sprintf("duplicate morphism %q", m.Name),
				Code:    ErrDuplicateMorphism,
			})
		}
		morphisms[m.Name] = true

		// E103: endpoints must be declared objects
		for _, end := range []struct{ field, obj string }{
			{"src", m.Src},
			{"dst", m.Dst},
		} {
			if !objects[end.obj] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("morphisms[%d].%s", i, end.field),
					Message: fmt.Sprintf("morphism %q %s %q is not a declared object", m.Name, end.field, end.obj),
					Code:    ErrUnknownEndpoint,
				})
			}
		}
	}

	// E104: composition rows may only reference declared morphisms
	for i, c := range d.Compositions {
		for _, ref := range []struct{ field, name string }{
			{"first", c.First},
			{"then", c.Then},
			{"is", c.Is},
		} {
			if !morphisms[ref.name] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("compositions[%d].%s", i, ref.field),
					Message: fmt.Sprintf("composition references undeclared morphism %q", ref.name),
					Code:    ErrDanglingComposition,
				})
			}
		}
	}

	// E106: declared identities must name declared objects, E105: and
	// must not collide with declared morphisms
	for obj, name := range d.Identities {
		if !objects[obj] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("identities.%s", obj),
				Message: fmt.Sprintf("identity declared for undeclared object %q", obj),
				Code:    ErrIdentityUnknownObject,
			})
		}
		if morphisms[name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("identities.%s", obj),
				Message: fmt.Sprintf("identity %q collides with a declared morphism", name),
				Code:    ErrDuplicateMorphism,
			})
		}
	}

	return errs
}

// validateFunctorDecl validates a functor declaration. When cats is
// nil only intra-declaration structure is checked; with the declared
// categories in scope the source/target references and the object and
// morphism maps are checked too.
func validateFunctorDecl(d *FunctorDecl, cats map[string]*CategoryDecl) []ValidationError {
	var errs []ValidationError

	for _, ref := range []struct{ field, name string }{
		{"source", d.Source},
		{"target", d.Target},
	} {
		if strings.TrimSpace(ref.name) == "" {
			errs = append(errs, ValidationError{
				Field:   ref.field,
				Message: ref.field + " category name must be non-empty",
				Code:    ErrEmptyName,
			})
			continue
		}
		if cats != nil && cats[ref.name] == nil {
			errs = append(errs, ValidationError{
				Field:   ref.field,
				Message: fmt.Sprintf("%s references undeclared category %q", ref.field, ref.name),
				Code:    ErrUnknownCategoryRef,
			})
		}
	}

	if cats == nil {
		return errs
	}
	src, dst := cats[d.Source], cats[d.Target]
	if src == nil || dst == nil {
		return errs
	}

	srcObjects := objectSet(src)
	dstObjects := objectSet(dst)
	for from, to := range d.Objects {
		if !srcObjects[from] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("objects.%s", from),
				Message: fmt.Sprintf("%q is not an object of source category %q", from, d.Source),
				Code:    ErrUnknownObjectRef,
			})
		}
		if !dstObjects[to] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("objects.%s", from),
				Message: fmt.Sprintf("%q is not an object of target category %q", to, d.Target),
				Code:    ErrUnknownObjectRef,
			})
		}
	}

	srcMorphisms := morphismSet(src)
	dstMorphisms := morphismSet(dst)
	for from, to := range d.Morphisms {
		if !srcMorphisms[from] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("morphisms.%s", from),
				Message: fmt.Sprintf("%q is not a morphism of source category %q", from, d.Source),
				Code:    ErrUnknownMorphismRef,
			})
		}
		if !dstMorphisms[to] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("morphisms.%s", from),
				Message: fmt.Sprintf("%q is not a morphism of target category %q", to, d.Target),
				Code:    ErrUnknownMorphismRef,
			})
		}
	}

	return errs
}

func validateDecls(d *Decls) []ValidationError {
	var errs []ValidationError

	cats := make(map[string]*CategoryDecl, len(d.Categories))
	for i := range d.Categories {
		c := &d.Categories[i]
		// E113: duplicate declaration name
		if cats[c.Name] != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("category.%s", c.Name),
				Message: fmt.Sprintf("duplicate category declaration %q", c.Name),
				Code:    ErrDuplicateDecl,
			})
		}
		cats[c.Name] = c
		errs = append(errs, prefixFields(validateCategoryDecl(c), "category."+c.Name)...)
	}

	functors := make(map[string]bool, len(d.Functors))
	for i := range d.Functors {
		f := &d.Functors[i]
		if functors[f.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("functor.%s", f.Name),
				Message: fmt.Sprintf("duplicate functor declaration %q", f.Name),
				Code:    ErrDuplicateDecl,
			})
		}
		functors[f.Name] = true
		errs = append(errs, prefixFields(validateFunctorDecl(f, cats), "functor."+f.Name)...)
	}

	return errs
}

func prefixFields(errs []ValidationError, prefix string) []ValidationError {
	for i := range errs {
		errs[i].Field = prefix + "." + errs[i].Field
	}
	return errs
}

// objectSet returns the declared objects of a category as a set.
func objectSet(d *CategoryDecl) map[string]bool {
	set := make(map[string]bool, len(d.Objects))
	for _, o := range d.Objects {
		set[o] = true
	}
	return set
}

// morphismSet returns the declared morphisms of a category as a set,
// including the identities the builder will synthesize.
func morphismSet(d *CategoryDecl) map[string]bool {
	set := make(map[string]bool, len(d.Morphisms)+len(d.Objects))
	for _, m := range d.Morphisms {
		set[m.Name] = true
	}
	for _, o := range d.Objects {
		set["id:"+o] = true
	}
	for _, name := range d.Identities {
		set[name] = true
	}
	return set
}
