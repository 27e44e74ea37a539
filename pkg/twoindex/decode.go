package twoindex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The API is loose about scalar types: numbers arrive as strings, flags as
// 0/1. These types accept every encoding the API has been seen to use and
// are converted into plain Go values by the model UnmarshalJSON methods.

type (
	flexFloat   float64
	flexInt     int
	count       int
	flexBool    bool
	flexString  string
	flexStrings []string
)

// scalarText returns the textual content of a JSON scalar. Strings are
// unquoted; numbers, booleans and null are returned verbatim.
func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string

		err := json.Unmarshal(data, &text)
		if err != nil {
			return "", fmt.Errorf("decoding string: %w", err)
		}

		return strings.TrimSpace(text), nil
	}

	return string(data), nil
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return err
	}

	if text == "" || text == "null" {
		*f = 0

		return nil
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}

	*f = flexFloat(value)

	return nil
}

func (i *flexInt) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return err
	}

	switch text {
	case "", "null", "false":
		*i = 0

		return nil
	case "true":
		*i = 1

		return nil
	}

	value, err := strconv.Atoi(text)
	if err == nil {
		*i = flexInt(value)

		return nil
	}

	float, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(float, 0) || math.IsNaN(float) {
		return fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}

	*i = flexInt(math.Trunc(float))

	return nil
}

func (c *count) UnmarshalJSON(data []byte) error {
	var value flexInt

	err := value.UnmarshalJSON(data)
	if err != nil {
		return err
	}

	if value < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, value)
	}

	*c = count(value)

	return nil
}

func (b *flexBool) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return err
	}

	switch strings.ToLower(text) {
	case "", "null", "0", "false", "no", "off":
		*b = false
	case "1", "true", "yes", "on":
		*b = true
	default:
		number, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidBoolean, text)
		}

		*b = number != 0
	}

	return nil
}

func (s *flexString) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return err
	}

	if text == "null" {
		text = ""
	}

	*s = flexString(text)

	return nil
}

// UnmarshalJSON accepts a list of strings, a single string, or null.
func (s *flexStrings) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*s = []string{}

		return nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var items []flexString

		err := json.Unmarshal(trimmed, &items)
		if err != nil {
			return fmt.Errorf("decoding string list: %w", err)
		}

		values := make([]string, 0, len(items))
		for _, item := range items {
			values = append(values, string(item))
		}

		*s = values

		return nil
	default:
		var single flexString

		err := single.UnmarshalJSON(trimmed)
		if err != nil {
			return err
		}

		*s = []string{string(single)}

		return nil
	}
}

func intPtr(c *count) *int {
	if c == nil {
		return nil
	}

	value := int(*c)

	return &value
}

func boolPtr(b *flexBool) *bool {
	if b == nil {
		return nil
	}

	value := bool(*b)

	return &value
}
