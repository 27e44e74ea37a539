// Package harvest collects URLs from local documents for link submission:
// plain text lists, CSV exports, HTML pages and RSS/Atom/JSON feeds.
package harvest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/2index-ninja/sdk-go/internal/constants"
)

// Format identifies how a document is parsed.
type Format int

const (
	FormatAuto Format = iota
	FormatText
	FormatHTML
	FormatFeed
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatHTML:
		return "html"
	case FormatFeed:
		return "feed"
	case FormatCSV:
		return "csv"
	default:
		return "auto"
	}
}

// ParseFormat maps a --format flag value to a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return FormatAuto, nil
	case "text", "txt":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	case "feed", "rss", "atom":
		return FormatFeed, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", constants.ErrUnsupportedDocument, value)
	}
}

// Options controls link collection.
type Options struct {
	// Format forces a parser. FormatAuto detects it from the file name and content.
	Format Format
	// BaseURL resolves relative links found in HTML documents.
	BaseURL *url.URL
	// SameHost keeps only links on BaseURL's host.
	SameHost bool
}

// File reads the document at path and returns the links it contains.
func File(path string, opts Options) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if opts.Format == FormatAuto {
		opts.Format = formatFromName(path)
	}

	return Reader(file, opts)
}

// Reader returns the links contained in the document read from r, in
// document order and without duplicates. Only absolute http(s) URLs are kept.
func Reader(r io.Reader, opts Options) ([]string, error) {
	data, err := io.ReadAll(io.LimitReader(r, constants.MaxHarvestFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	if len(data) > constants.MaxHarvestFileSize {
		return nil, constants.ErrDocumentTooLarge
	}

	format := opts.Format
	if format == FormatAuto {
		format = sniff(data)
	}

	var candidates []string

	switch format {
	case FormatHTML:
		candidates, err = fromHTML(data, opts.BaseURL)
	case FormatFeed:
		candidates, err = fromFeed(data)
	case FormatText:
		candidates = fromText(data)
	case FormatCSV:
		candidates, err = fromCSV(data)
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedDocument, format)
	}

	if err != nil {
		return nil, err
	}

	links := filter(candidates, opts)
	if len(links) == 0 {
		return nil, constants.ErrNoLinksFound
	}

	return links, nil
}

func formatFromName(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	case ".rss", ".atom", ".xml":
		return FormatFeed
	case ".txt", ".list":
		return FormatText
	case ".csv":
		return FormatCSV
	default:
		return FormatAuto
	}
}

func sniff(data []byte) Format {
	head := bytes.ToLower(bytes.TrimSpace(data[:min(len(data), 1024)]))

	switch {
	case bytes.HasPrefix(head, []byte("<!doctype html")), bytes.Contains(head, []byte("<html")):
		return FormatHTML
	case bytes.Contains(head, []byte("<rss")), bytes.Contains(head, []byte("<feed")), bytes.Contains(head, []byte("<rdf:rdf")):
		return FormatFeed
	case bytes.HasPrefix(head, []byte("{")) && bytes.Contains(head, []byte("jsonfeed.org")):
		return FormatFeed
	default:
		return FormatText
	}
}

func fromText(data []byte) []string {
	var links []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxHarvestFileSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Anything after the first blank is an annotation. Commas and
		// semicolons are legal inside URLs and stay.
		if fields := strings.Fields(line); len(fields) > 0 {
			line = fields[0]
		}

		links = append(links, line)
	}

	return links
}

// fromCSV takes the first field of every record. Header rows fall out in
// filter since they are not URLs.
func fromCSV(data []byte) ([]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var links []string

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parsing csv: %w", err)
		}

		if len(record) > 0 {
			links = append(links, strings.TrimSpace(record[0]))
		}
	}

	return links, nil
}

func fromHTML(data []byte, base *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if parsed, parseErr := url.Parse(strings.TrimSpace(href)); parseErr == nil {
			if base != nil {
				parsed = base.ResolveReference(parsed)
			}

			base = parsed
		}
	}

	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)

		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		if base != nil {
			ref = base.ResolveReference(ref)
		}

		ref.Fragment = ""
		links = append(links, ref.String())
	})

	return links, nil
}

func fromFeed(data []byte) ([]string, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	links := make([]string, 0, len(feed.Items))

	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" && len(item.Links) > 0 {
			link = strings.TrimSpace(item.Links[0])
		}

		if link != "" {
			links = append(links, link)
		}
	}

	return links, nil
}

func filter(candidates []string, opts Options) []string {
	seen := make(map[string]struct{}, len(candidates))
	links := make([]string, 0, len(candidates))

	for _, candidate := range candidates {
		parsed, err := url.Parse(candidate)
		if err != nil || parsed.Host == "" {
			continue
		}

		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			continue
		}

		if opts.SameHost && opts.BaseURL != nil && !strings.EqualFold(parsed.Hostname(), opts.BaseURL.Hostname()) {
			continue
		}

		if _, dup := seen[candidate]; dup {
			continue
		}

		seen[candidate] = struct{}{}
		links = append(links, candidate)
	}

	return links
}
