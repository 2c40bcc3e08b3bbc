package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexibleString decodes a JSON string or number into its string form.
// Storefront and provider ids arrive both quoted and unquoted.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleString(n.String())
	return nil
}

func (f FlexibleString) String() string {
	return string(f)
}

// Trimmed drops surrounding whitespace so ids compare equal however they were typed
func (f FlexibleString) Trimmed() FlexibleString {
	return FlexibleString(strings.TrimSpace(string(f)))
}
