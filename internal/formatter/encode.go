package formatter

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/jxview/internal/models"
)

// writeValue serializes v the way JSON.stringify does: members in order,
// numbers in their shortest round-trip form, and empty containers as {} or [].
func writeValue(b *strings.Builder, v models.JSONValue, indent string, depth int) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(val))
	case string:
		b.WriteString(Quote(val))
	case json.Number:
		b.WriteString(Number(val))
	case models.JSONObject:
		if len(val) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, m := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, indent, depth+1)
			b.WriteString(Quote(m.Key))
			b.WriteByte(':')
			if indent != "" {
				b.WriteByte(' ')
			}
			writeValue(b, m.Value, indent, depth+1)
		}
		newline(b, indent, depth)
		b.WriteByte('}')
	case models.JSONArray:
		if len(val) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, indent, depth+1)
			writeValue(b, item, indent, depth+1)
		}
		newline(b, indent, depth)
		b.WriteByte(']')
	default:
		// Values built outside the parser, e.g. by callers of the library.
		data, err := json.Marshal(val)
		if err != nil {
			b.WriteString("null")
			return
		}
		b.Write(data)
	}
}

func newline(b *strings.Builder, indent string, depth int) {
	if indent == "" {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString(indent)
	}
}

// Quote returns s as a JSON string literal without HTML escaping.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Number renders a JSON number literal the way a JavaScript engine prints the
// parsed double: 1.50 becomes 1.5, 1E3 becomes 1000, 1e-7 stays 1e-7, and
// values outside the double range become null.
func Number(n json.Number) string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		if math.IsInf(f, 0) {
			return "null"
		}
		return string(n)
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
