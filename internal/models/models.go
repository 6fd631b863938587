package models

// DocType is the detected kind of a document.
type DocType string

const (
	DocJSON    DocType = "json"
	DocXML     DocType = "xml"
	DocUnknown DocType = "unknown"
)

// Label returns the display name of the type.
func (t DocType) Label() string {
	switch t {
	case DocJSON:
		return "JSON"
	case DocXML:
		return "XML"
	case DocUnknown:
		return "Unknown"
	default:
		return "Not detected"
	}
}

// Document is the raw text being edited plus its detected type.
// It is replaced wholesale on every edit or applied fix.
type Document struct {
	Text string
	Type DocType
}

// JSONValue is a generic type to represent any JSON value.
// Scalars are string, json.Number, bool or nil; containers are JSONObject and JSONArray.
type JSONValue interface{}

// Member is a single key-value pair of a JSONObject.
type Member struct {
	Key   string
	Value JSONValue
}

// JSONObject represents a JSON object. Members keep document order.
type JSONObject []Member

// Get returns the value stored under key.
func (o JSONObject) Get(key string) (JSONValue, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the member keys in order.
func (o JSONObject) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Parsed holds a successfully parsed JSON document.
type Parsed struct {
	Root        JSONValue
	RootIsArray bool // True if the root of the JSON is an array vs an object
}
