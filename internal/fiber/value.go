package fiber

import (
	"math"
	"strconv"
	"strings"
)

// Value is a sealed interface over the element types a fiber may hold.
// Only VString, VInt, VFloat, and VBool implement it. All four are
// comparable scalars, so Values compare by value with == and may be used
// as map keys; element identity is never pointer identity.
type Value interface {
	value() // sealed
}

// VString is a string element.
type VString string

func (VString) value() {}

// VInt is an integer element. Always int64.
type VInt int64

func (VInt) value() {}

// VFloat is a floating-point element. Quality scores are floats, so
// unlike general content-addressed IR, floats are first-class here; they
// serialize via shortest round-trip formatting to keep hashing and
// golden comparison deterministic. NaN and infinities are rejected at
// serialization time.
type VFloat float64

func (VFloat) value() {}

// VBool is a boolean element.
type VBool bool

func (VBool) value() {}

// kindRank orders value kinds for deterministic cross-kind sorting.
func kindRank(v Value) int {
	switch v.(type) {
	case VBool:
		return 0
	case VInt:
		return 1
	case VFloat:
		return 2
	case VString:
		return 3
	default:
		return 4
	}
}

// Compare defines a total, deterministic order over Values: by kind,
// then by value. Used for canonical fiber ordering and union
// deduplication.
func Compare(a, b Value) int {
	if ra, rb := kindRank(a), kindRank(b); ra != rb {
		return ra - rb
	}
	switch av := a.(type) {
	case VBool:
		bv := b.(VBool)
		switch {
		case av == bv:
			return 0
		case !bool(av):
			return -1
		default:
			return 1
		}
	case VInt:
		bv := b.(VInt)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case VFloat:
		bv := b.(VFloat)
		switch {
		case float64(av) < float64(bv):
			return -1
		case float64(av) > float64(bv):
			return 1
		default:
			return 0
		}
	case VString:
		return strings.Compare(string(av), string(b.(VString)))
	default:
		return 0
	}
}

// Numeric extracts the float64 value of a numeric element. The second
// return is false for non-numeric kinds; callers must not default it.
func Numeric(v Value) (float64, bool) {
	switch n := v.(type) {
	case VInt:
		return float64(n), true
	case VFloat:
		return float64(n), true
	default:
		return 0, false
	}
}

// formatValue renders a Value for messages and provenance labels.
func formatValue(v Value) string {
	switch val := v.(type) {
	case VString:
		return strconv.Quote(string(val))
	case VInt:
		return strconv.FormatInt(int64(val), 10)
	case VFloat:
		return formatFloat(float64(val))
	case VBool:
		return strconv.FormatBool(bool(val))
	default:
		return "<unknown>"
	}
}

// formatFloat renders a float with shortest round-trip precision.
// Integral values keep a trailing ".0" so the rendering is never
// confusable with a VInt.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}
	return s
}
