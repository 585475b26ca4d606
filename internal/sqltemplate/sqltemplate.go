// Package sqltemplate interpolates named values into SQL text templates.
//
// Templates carry {name} placeholders. Each named value is rendered as a
// SQL literal appropriate to its type (strings escaped and quoted, numbers
// bare, nil as NULL), which prevents naive string-concatenation injection
// through the supplied values. The template structure itself is trusted and
// is not sanitised.
package sqltemplate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// placeholderRe matches {name} placeholders. Names are plain identifiers.
var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// identifierRe matches a SQL identifier, optionally schema-qualified.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*(\.[A-Za-z_][A-Za-z0-9_$#]*)*$`)

// Interpolate replaces every {name} placeholder in the template with the
// quoted literal rendering of params[name]. A placeholder with no matching
// param, or a param of an unsupported type, is an error. Params without a
// matching placeholder are ignored.
func Interpolate(template string, params map[string]any) (string, error) {
	var firstErr error

	out := placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := params[name]
		if !ok {
			if firstErr == nil {
				firstErr = fmt.Errorf("no value for placeholder {%s}", name)
			}
			return match
		}
		literal, err := QuoteLiteral(value)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("placeholder {%s}: %w", name, err)
			}
			return match
		}
		return literal
	})

	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// QuoteLiteral renders a single value as a SQL literal.
//
// Strings are single-quoted with embedded quotes doubled. Booleans become
// 1/0 (the remote database speaks T-SQL bit semantics). Slices become
// parenthesised lists for use with IN. nil becomes NULL.
func QuoteLiteral(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quoteString(v), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case json.Number:
		return quoteNumber(v)
	case time.Time:
		return quoteString(v.UTC().Format("2006-01-02 15:04:05")), nil
	case []any:
		return quoteList(v)
	case []string:
		anyv := make([]any, len(v))
		for i, s := range v {
			anyv[i] = s
		}
		return quoteList(anyv)
	case []int:
		anyv := make([]any, len(v))
		for i, n := range v {
			anyv[i] = n
		}
		return quoteList(anyv)
	case []int64:
		anyv := make([]any, len(v))
		for i, n := range v {
			anyv[i] = n
		}
		return quoteList(anyv)
	case []float64:
		anyv := make([]any, len(v))
		for i, n := range v {
			anyv[i] = n
		}
		return quoteList(anyv)
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

// ValidIdentifier reports whether name is a plain SQL identifier,
// optionally schema-qualified (e.g. "Contratos_VIEW" or "dbo.Contratos").
func ValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteNumber re-validates a json.Number before passing it through bare.
func quoteNumber(n json.Number) (string, error) {
	if _, err := n.Int64(); err == nil {
		return n.String(), nil
	}
	if _, err := n.Float64(); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("invalid numeric literal %q", n.String())
}

func quoteList(values []any) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("empty list value")
	}
	parts := make([]string, len(values))
	for i, v := range values {
		literal, err := QuoteLiteral(v)
		if err != nil {
			return "", err
		}
		parts[i] = literal
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}
