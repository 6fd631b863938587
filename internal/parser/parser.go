package parser

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	stderrors "errors" // Standard errors package

	"github.com/tailscale/hujson"

	"github.com/mcncl/jxview/internal/errors" // Custom errors package
	"github.com/mcncl/jxview/internal/models"
)

// Parse reads JSON data from an io.Reader and parses it into ordered values.
func Parse(reader io.Reader) (models.Parsed, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Parsed{}, errors.NewInputError("failed to read input", err)
	}
	if len(data) == 0 {
		return models.Parsed{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return ParseString(string(data))
}

// ParseString parses JSON from a string.
//
// Validation is strict: trailing commas, comments and single quotes are all
// rejected. Syntax errors report the character position of the failure as
// "at position N" in the error message.
func ParseString(text string) (models.Parsed, error) {
	if strings.TrimSpace(text) == "" {
		return models.Parsed{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}

	if err := validate(text); err != nil {
		return models.Parsed{}, err
	}

	// The input is valid JSON at this point, which is a subset of what hujson
	// accepts. hujson keeps object members in document order.
	ast, err := hujson.Parse([]byte(text))
	if err != nil {
		return models.Parsed{}, errors.NewParsingError("failed to decode JSON", err)
	}
	root, err := convert(ast)
	if err != nil {
		return models.Parsed{}, errors.NewParsingError("failed to decode JSON", err)
	}

	_, isArray := root.(models.JSONArray)
	return models.Parsed{Root: root, RootIsArray: isArray}, nil
}

// Valid reports whether text is a single strictly valid JSON value.
func Valid(text string) bool {
	return strings.TrimSpace(text) != "" && validate(text) == nil
}

// validate runs the encoding/json scanner over the whole input.
func validate(text string) error {
	var raw json.RawMessage
	err := json.Unmarshal([]byte(text), &raw)
	if err == nil {
		return nil
	}

	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		pos := errorPosition(text, syntaxError)
		return errors.NewParsingError(
			fmt.Sprintf("%s at position %d", syntaxError.Error(), pos),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// errorPosition converts the scanner's byte offset into the character offset
// of the offending character. The scanner reports the number of bytes read,
// including the bad one; an unexpected end of input points past the last character.
func errorPosition(text string, syntaxError *json.SyntaxError) int {
	offset := int(syntaxError.Offset)
	if !strings.HasPrefix(syntaxError.Error(), "unexpected end") && offset > 0 {
		offset--
	}
	if offset > len(text) {
		offset = len(text)
	}
	return utf8.RuneCountInString(text[:offset])
}

// convert turns a hujson syntax tree into model values.
// Duplicate keys keep their first position and their last value.
func convert(v hujson.Value) (models.JSONValue, error) {
	switch node := v.Value.(type) {
	case *hujson.Object:
		obj := make(models.JSONObject, 0, len(node.Members))
		index := make(map[string]int, len(node.Members))
		for _, member := range node.Members {
			key, err := memberName(member.Name)
			if err != nil {
				return nil, err
			}
			value, err := convert(member.Value)
			if err != nil {
				return nil, err
			}
			if i, seen := index[key]; seen {
				obj[i].Value = value
				continue
			}
			index[key] = len(obj)
			obj = append(obj, models.Member{Key: key, Value: value})
		}
		return obj, nil
	case *hujson.Array:
		arr := make(models.JSONArray, len(node.Elements))
		for i, elem := range node.Elements {
			value, err := convert(elem)
			if err != nil {
				return nil, err
			}
			arr[i] = value
		}
		return arr, nil
	case hujson.Literal:
		return literal(node)
	default:
		return nil, fmt.Errorf("unexpected JSON node %T", v.Value)
	}
}

func memberName(v hujson.Value) (string, error) {
	lit, ok := v.Value.(hujson.Literal)
	if !ok {
		return "", fmt.Errorf("object key is %T, not a string", v.Value)
	}
	var key string
	if err := json.Unmarshal([]byte(lit), &key); err != nil {
		return "", fmt.Errorf("invalid object key %s: %w", lit, err)
	}
	return key, nil
}

func literal(lit hujson.Literal) (models.JSONValue, error) {
	if len(lit) == 0 {
		return nil, fmt.Errorf("empty literal")
	}
	switch lit[0] {
	case 'n':
		return nil, nil
	case 't':
		return true, nil
	case 'f':
		return false, nil
	case '"':
		var s string
		if err := json.Unmarshal([]byte(lit), &s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return json.Number(string(lit)), nil
	}
}

// ReadFile reads a document from a file path.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return string(data), nil
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Parsed, error) {
	text, err := ReadFile(filePath)
	if err != nil {
		return models.Parsed{}, err
	}
	return ParseString(text)
}

// CheckXML verifies that text is a well-formed XML document with a single
// root element. It does not validate against any schema.
func CheckXML(text string) error {
	decoder := xml.NewDecoder(strings.NewReader(text))
	decoder.Strict = true

	depth, roots := 0, 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.NewXMLError(err.Error(), errors.ErrInvalidXML)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					line, _ := decoder.InputPos()
					return errors.NewXMLError(
						fmt.Sprintf("junk after document element on line %d", line),
						errors.ErrInvalidXML,
					)
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && strings.TrimSpace(string(t)) != "" {
				line, _ := decoder.InputPos()
				return errors.NewXMLError(
					fmt.Sprintf("content outside of the root element on line %d", line),
					errors.ErrInvalidXML,
				)
			}
		}
	}

	if roots == 0 {
		return errors.NewXMLError("no root element found", errors.ErrInvalidXML)
	}
	return nil
}
