package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcncl/jxview/internal/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.DocType
	}{
		{name: "xml with leading space", input: "  <root/>", expected: models.DocXML},
		{name: "json array", input: "[1,2,3]", expected: models.DocJSON},
		{name: "json object", input: `{"a": 1}`, expected: models.DocJSON},
		{name: "malformed json object", input: `{a: 1,}`, expected: models.DocJSON},
		{name: "plain text", input: "plain text", expected: models.DocUnknown},
		{name: "json number", input: "42", expected: models.DocJSON},
		{name: "json string", input: `"hello"`, expected: models.DocJSON},
		{name: "json literal", input: "null", expected: models.DocJSON},
		{name: "embedded tag", input: "note: <b>bold</b>", expected: models.DocXML},
		{name: "comparison is not a tag", input: "a < b", expected: models.DocUnknown},
		{name: "empty", input: "   ", expected: models.DocUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.input))
		})
	}
}
