package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// formNumber decodes an integer sent either as a JSON number or as its decimal string, the
// way HTML form values arrive. null and "" leave it unset.
type formNumber struct {
	value int64
	set   bool
}

func (n *formNumber) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}

	text := string(raw)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil
		}
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", text)
	}
	n.value, n.set = value, true
	return nil
}

func (n formNumber) asInt() int {
	return int(n.value)
}

// id rejects negative values; an unset id stays zero so presence checks still fire.
func (n formNumber) id(field string) (uint, error) {
	if n.value < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return uint(n.value), nil
}

// intPtr keeps an unset number nil for required checks on optional-zero fields.
func (n formNumber) intPtr() *int {
	if !n.set {
		return nil
	}
	value := n.asInt()
	return &value
}
