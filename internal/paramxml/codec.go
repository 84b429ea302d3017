package paramxml

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/qbic-pipelines/mqrund/internal/schema"
)

// errSchemaMismatch signals that a document value's dynamic type
// doesn't match its schema-declared type, or that XML content
// couldn't be decoded as the declared type.
type errSchemaMismatch struct{ msg string }

func (e *errSchemaMismatch) Error() string { return "schema mismatch: " + e.msg }

func schemaMismatchf(format string, args ...interface{}) error {
	return &errSchemaMismatch{msg: fmt.Sprintf(format, args...)}
}

// IsSchemaMismatch reports whether err is (or wraps) a SchemaMismatch
// failure.
func IsSchemaMismatch(err error) bool {
	var target *errSchemaMismatch
	return errors.As(err, &target)
}

// errMissingPath signals that a raw-file or fasta descriptor names a
// logical entity absent from the path maps with no explicit path
// fallback.
type errMissingPath struct{ msg string }

func (e *errMissingPath) Error() string { return "missing path: " + e.msg }

func missingPathf(format string, args ...interface{}) error {
	return &errMissingPath{msg: fmt.Sprintf(format, args...)}
}

// IsMissingPath reports whether err is (or wraps) a MissingPath
// failure.
func IsMissingPath(err error) bool {
	var target *errMissingPath
	return errors.As(err, &target)
}

// errXMLShape signals that a required XML element is absent during
// from_xml.
type errXMLShape struct{ msg string }

func (e *errXMLShape) Error() string { return "xml shape: " + e.msg }

func xmlShapef(format string, args ...interface{}) error {
	return &errXMLShape{msg: fmt.Sprintf(format, args...)}
}

// IsXMLShape reports whether err is (or wraps) an XmlShape failure.
func IsXMLShape(err error) bool {
	var target *errXMLShape
	return errors.As(err, &target)
}

// encode renders a scalar document value as XML text. This is the
// wire contract; callers must not reorder the type switch below
// without re-checking the pinned test cases in codec_test.go.
func encode(v interface{}) (string, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return encodeNumber(x), nil
	case float32:
		return encodeNumber(float64(x)), nil
	default:
		return "", schemaMismatchf("cannot encode value of type %T", v)
	}
}

// encodeNumber implements the real-number half of the encoding rules:
// NaN emits as the literal "NaN"; zero and any value whose magnitude
// lies between 1e-4 and 1e15 emit in plain decimal notation with the
// shortest exact digits (so integer-valued reals carry no decimals and
// 1.5 stays "1.5"); everything else emits in scientific notation with
// an uppercase exponent marker.
func encodeNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	abs := math.Abs(v)
	if v == 0 || (abs >= 1e-4 && abs <= 1e15) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	return strings.ToUpper(s)
}

// decode parses XML element text as the declared scalar type. A nil
// text pointer (element present but empty, or a genuinely
// absent/null leaf) decodes to the absent-value marker, represented
// here as a Go nil.
func decode(text *string, t schema.ScalarType) (interface{}, error) {
	if text == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*text)
	switch t {
	case schema.ScalarString:
		return s, nil
	case schema.ScalarInteger:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, schemaMismatchf("not an integer: %q", s)
		}
		return n, nil
	case schema.ScalarNumber:
		if s == "NaN" {
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, schemaMismatchf("not a number: %q", s)
		}
		return f, nil
	case schema.ScalarBoolean:
		switch s {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, schemaMismatchf("not a bool: %q", s)
		}
	default:
		return nil, schemaMismatchf("unknown scalar type %v", t)
	}
}
