package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/2index-ninja/sdk-go/internal/constants"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// OutcomeKind classifies a completed HTTP exchange.
type OutcomeKind int

const (
	// OutcomeOK means the body is the result of the call.
	OutcomeOK OutcomeKind = iota
	// OutcomeAPIError means the server refused the operation.
	OutcomeAPIError
	// OutcomeNetworkError means the body could not be decoded.
	OutcomeNetworkError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeAPIError:
		return "api_error"
	case OutcomeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of Evaluate. Err is a *twoindex.APIError or a
// *twoindex.NetworkError, and nil for OutcomeOK.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// Evaluate decides whether a response is a success, an application error or
// an undecodable body. The rules, in order:
//
//  1. a body that is not valid JSON is a network error;
//  2. an object with "success": false is an API error, whatever the status;
//  3. any status >= 400 is an API error;
//  4. everything else is a success, including objects without "success".
func Evaluate(statusCode int, body []byte) Outcome {
	if !json.Valid(body) {
		var value interface{}

		err := json.Unmarshal(body, &value)
		if err == nil {
			err = twoindex.ErrInvalidResponse
		}

		return Outcome{
			Kind: OutcomeNetworkError,
			Err: &twoindex.NetworkError{
				StatusCode: statusCode,
				Err:        fmt.Errorf("failed to decode API response: %w", err),
			},
		}
	}

	var fields map[string]json.RawMessage

	isObject := json.Unmarshal(body, &fields) == nil && fields != nil

	explicitFailure := isObject && isJSONFalse(fields[constants.KeySuccess])
	if !explicitFailure && statusCode < 400 {
		return Outcome{Kind: OutcomeOK}
	}

	return Outcome{
		Kind: OutcomeAPIError,
		Err:  buildAPIError(statusCode, fields),
	}
}

func isJSONFalse(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("false"))
}

// buildAPIError turns a failure body into an APIError. fields is nil when the
// body was valid JSON but not an object.
func buildAPIError(statusCode int, fields map[string]json.RawMessage) *twoindex.APIError {
	apiErr := &twoindex.APIError{
		Message:      constants.GenericAPIErrorMessage,
		StatusCode:   statusCode,
		Errors:       map[string]interface{}{},
		InvalidLinks: []string{},
	}

	rawErrors, hasErrors := fields[constants.KeyErrors]
	if hasErrors && !isEmptyValue(rawErrors) {
		apiErr.Message = flattenErrors(rawErrors)
		apiErr.Errors = structuredErrors(rawErrors)
	} else if message, ok := messageText(fields[constants.KeyMessage]); ok {
		apiErr.Message = message
	}

	if rawLinks, ok := fields[constants.KeyInvalidLinks]; ok {
		apiErr.InvalidLinks = linkList(rawLinks)
	}

	return apiErr
}

// isEmptyValue reports whether raw is null, false, zero, "", "0", [] or {}.
func isEmptyValue(raw json.RawMessage) bool {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value interface{}

	err := decoder.Decode(&value)
	if err != nil {
		return true
	}

	switch typed := value.(type) {
	case nil:
		return true
	case bool:
		return !typed
	case string:
		return typed == "" || typed == "0"
	case json.Number:
		number, err := typed.Float64()

		return err == nil && number == 0
	case []interface{}:
		return len(typed) == 0
	case map[string]interface{}:
		return len(typed) == 0
	default:
		return false
	}
}

// messageText returns the "message" member when it is a non-null scalar. An
// empty string counts as present.
func messageText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}

	root, err := parseNode(raw)
	if err != nil || root.kind != nodeScalar {
		return "", false
	}

	return root.text, true
}

// flattenErrors renders the "errors" field as one line: top-level entries
// are joined with "; " and the items inside an entry with ", ". Key order is
// preserved.
func flattenErrors(raw json.RawMessage) string {
	root, err := parseNode(raw)
	if err != nil {
		return constants.GenericAPIErrorMessage
	}

	if root.kind == nodeScalar {
		return root.text
	}

	entries := make([]string, 0, len(root.items))
	for _, item := range root.items {
		entries = append(entries, joinItems(item))
	}

	return strings.Join(entries, constants.ErrorEntrySeparator)
}

func joinItems(n node) string {
	if n.kind == nodeScalar {
		return n.text
	}

	parts := make([]string, 0, len(n.items))
	for _, item := range n.items {
		parts = append(parts, joinItems(item))
	}

	return strings.Join(parts, constants.ErrorItemSeparator)
}

// structuredErrors decodes "errors" into a map. Lists are keyed by index.
func structuredErrors(raw json.RawMessage) map[string]interface{} {
	var value interface{}

	err := json.Unmarshal(raw, &value)
	if err != nil {
		return map[string]interface{}{}
	}

	switch typed := value.(type) {
	case map[string]interface{}:
		return typed
	case []interface{}:
		out := make(map[string]interface{}, len(typed))
		for index, item := range typed {
			out[strconv.Itoa(index)] = item
		}

		return out
	default:
		return map[string]interface{}{"0": typed}
	}
}

func linkList(raw json.RawMessage) []string {
	root, err := parseNode(raw)
	if err != nil {
		return []string{}
	}

	if root.kind == nodeScalar {
		if root.text == "" {
			return []string{}
		}

		return []string{root.text}
	}

	links := make([]string, 0, len(root.items))
	for _, item := range root.items {
		links = append(links, joinItems(item))
	}

	return links
}

type nodeKind int

const (
	nodeScalar nodeKind = iota
	nodeList
	nodeObject
)

// node is a JSON value that keeps object members in document order, which
// map-based decoding loses.
type node struct {
	kind  nodeKind
	text  string
	items []node
}

func parseNode(raw json.RawMessage) (node, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	return readNode(decoder)
}

func readNode(decoder *json.Decoder) (node, error) {
	token, err := decoder.Token()
	if err != nil {
		return node{}, fmt.Errorf("reading token: %w", err)
	}

	switch value := token.(type) {
	case json.Delim:
		return readContainer(decoder, value)
	case string:
		return node{kind: nodeScalar, text: value}, nil
	case json.Number:
		return node{kind: nodeScalar, text: value.String()}, nil
	case bool:
		return node{kind: nodeScalar, text: strconv.FormatBool(value)}, nil
	default:
		return node{kind: nodeScalar}, nil
	}
}

func readContainer(decoder *json.Decoder, delim json.Delim) (node, error) {
	container := node{kind: nodeList}
	if delim == '{' {
		container.kind = nodeObject
	}

	for decoder.More() {
		if container.kind == nodeObject {
			_, err := decoder.Token()
			if err != nil {
				return node{}, fmt.Errorf("reading key: %w", err)
			}
		}

		item, err := readNode(decoder)
		if err != nil {
			return node{}, err
		}

		container.items = append(container.items, item)
	}

	_, err := decoder.Token()
	if err != nil {
		return node{}, fmt.Errorf("reading closing delimiter: %w", err)
	}

	return container, nil
}
