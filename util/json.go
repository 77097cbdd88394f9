package util

import (
	"bytes"
	"encoding/json"
)

// PrettyJSON indents a JSON document with two spaces. Input that is not
// JSON, such as an empty query result, is returned as it is.
func PrettyJSON(raw []byte) string {
	var out bytes.Buffer

	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}

	return out.String()
}
