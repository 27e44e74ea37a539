package twoindex

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Links is the set of URLs submitted to link/add and link/add_simple. It holds
// either a list of URLs or a single newline-delimited block of text, and is
// sent in exactly the form it was built with; the API parses text blocks.
type Links struct {
	urls   []string
	text   string
	isText bool
}

// LinksFromList builds Links from individual URLs.
func LinksFromList(urls ...string) Links {
	list := make([]string, len(urls))
	copy(list, urls)

	return Links{urls: list}
}

// LinksFromText builds Links from a newline-delimited block of URLs.
func LinksFromText(text string) Links {
	return Links{text: text, isText: true}
}

// IsText reports whether the links were given as a text block.
func (l Links) IsText() bool {
	return l.isText
}

// List returns a copy of the URL list. It is nil for text blocks.
func (l Links) List() []string {
	if l.isText {
		return nil
	}

	list := make([]string, len(l.urls))
	copy(list, l.urls)

	return list
}

// Text returns the text block. It is empty for lists.
func (l Links) Text() string {
	return l.text
}

// IsEmpty reports whether there is nothing to submit.
func (l Links) IsEmpty() bool {
	if l.isText {
		return strings.TrimSpace(l.text) == ""
	}

	return len(l.urls) == 0
}

// Len returns the number of URLs in a list, or of non-blank lines in a text block.
func (l Links) Len() int {
	if !l.isText {
		return len(l.urls)
	}

	lines := 0

	for _, line := range strings.Split(l.text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}

	return lines
}

// MarshalJSON encodes a list as a JSON array and a text block as a JSON string.
func (l Links) MarshalJSON() ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if l.isText {
		data, err = json.Marshal(l.text)
	} else {
		urls := l.urls
		if urls == nil {
			urls = []string{}
		}

		data, err = json.Marshal(urls)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding links: %w", err)
	}

	return data, nil
}
