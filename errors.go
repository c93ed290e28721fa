package toolform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissing          = "missing"
	CodeStringType       = "string_type"
	CodeIntType          = "int_type"
	CodeIntParsing       = "int_parsing"
	CodeIntFromFloat     = "int_from_float"
	CodeFloatType        = "float_type"
	CodeBoolType         = "bool_type"
	CodeDictType         = "dict_type"
	CodeListType         = "list_type"
	CodeEnum             = "enum"
	CodePatternMismatch  = "string_pattern_mismatch"
	CodeStringTooShort   = "string_too_short"
	CodeStringTooLong    = "string_too_long"
	CodeTooShort         = "too_short"
	CodeTooLong          = "too_long"
	CodeGreaterThanEqual = "greater_than_equal"
	CodeLessThanEqual    = "less_than_equal"
	CodeInvalidFormat    = "invalid_format"
	CodeJSONInvalid      = "json_invalid"
)

// Issue represents a single validation entry.
type Issue struct {
	// Path locates the offending value as an ordered sequence of object keys
	// (string) and array indices (int). Empty means the document root.
	Path []any
	Code string // One of the codes listed above.
	Msg  string
	// Input is the offending input fragment. For a missing field this is the
	// enclosing object that lacked it.
	Input any
	// Ctx carries structured parameters (e.g., {"ge": 1}) for feedback and
	// observability.
	Ctx map[string]any
}

// Pointer renders the location as a JSON Pointer (for example: /items/2/price).
func (it Issue) Pointer() string {
	if len(it.Path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range it.Path {
		b.WriteByte('/')
		switch s := seg.(type) {
		case string:
			// escape '~' -> '~0', '/' -> '~1' per RFC6901
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1"))
		case int:
			b.WriteString(strconv.Itoa(s))
		default:
			fmt.Fprintf(b, "%v", seg)
		}
	}
	return b.String()
}

// Issues is an ordered collection of validation errors that implements error.
// Order matches the order fields were checked and is preserved end-to-end.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing at /age
		fmt.Fprintf(b, "%s at %s", it.Code, it.Pointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// BuildError reports a malformed or unsupported source construct: an
// unresolved reference, a truly cyclic definition, an annotation the tree
// cannot represent. It is fatal at construction time and propagates to the
// caller unchanged.
type BuildError struct {
	Msg   string
	Cause error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return "toolform: " + e.Msg + ": " + e.Cause.Error()
	}
	return "toolform: " + e.Msg
}

func (e *BuildError) Unwrap() error { return e.Cause }

// NewBuildError constructs a BuildError with a formatted message.
func NewBuildError(format string, args ...any) *BuildError {
	return &BuildError{Msg: fmt.Sprintf(format, args...)}
}

// AsBuildError extracts a BuildError from an error chain.
func AsBuildError(err error) (*BuildError, bool) {
	var be *BuildError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
