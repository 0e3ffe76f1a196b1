package highlight

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tartampluch/go-ethiocal/internal/config"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a highlight source.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatVCard Format = "vcard"
)

//go:embed holidays.yaml
var defaultHolidays []byte

const documentKey = "highlights"

// document is the on-disk shape: a top-level "highlights" list
// ([[highlights]] tables in TOML).
type document struct {
	Highlights []Highlight `json:"highlights" yaml:"highlights" toml:"highlights"`
}

// FormatFromName picks the format from a file name or URL extension.
// Query strings and fragments are ignored.
func FormatFromName(name string) (Format, error) {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case config.ExtJSON:
		return FormatJSON, nil
	case config.ExtYAML, config.ExtYML:
		return FormatYAML, nil
	case config.ExtTOML:
		return FormatTOML, nil
	case config.ExtVCF, config.ExtVCard:
		return FormatVCard, nil
	default:
		return "", fmt.Errorf("%s: %q", config.ErrFormatUnknown, ext)
	}
}

// Decode reads every highlight from r. JSON and YAML sources may also be a
// bare list of records instead of a {highlights: [...]} document.
func Decode(r io.Reader, f Format) ([]Highlight, error) {
	if f == FormatVCard {
		return DecodeContacts(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSourceRead, err)
	}

	var doc document
	var stray []string
	switch f {
	case FormatJSON:
		err = decodeEither(data, &doc, json.Unmarshal)
		if err == nil && len(doc.Highlights) == 0 {
			stray = strayKeys(data, json.Unmarshal)
		}
	case FormatYAML:
		err = decodeEither(data, &doc, yaml.Unmarshal)
		if err == nil && len(doc.Highlights) == 0 {
			stray = strayKeys(data, yaml.Unmarshal)
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &doc)
		if err == nil && len(doc.Highlights) == 0 && !md.IsDefined(documentKey) {
			for _, k := range md.Keys() {
				if len(k) == 1 {
					stray = append(stray, k.String())
				}
			}
		}
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrFormatUnknown, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", config.ErrHighlightDecode, f, err)
	}
	if len(stray) > 0 {
		sort.Strings(stray)
		return nil, fmt.Errorf("%s (%s): %s %s", config.ErrHighlightDecode, f, config.ErrHighlightsKey, strings.Join(stray, ", "))
	}
	return doc.Highlights, nil
}

// strayKeys returns the top-level keys of a mapping document that has no
// highlights list, so a misspelled key fails instead of loading nothing.
// Empty documents and bare lists yield nil.
func strayKeys(data []byte, unmarshal func([]byte, any) error) []string {
	var top map[string]any
	if unmarshal(data, &top) != nil || len(top) == 0 {
		return nil
	}
	if _, ok := top[documentKey]; ok {
		return nil
	}
	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	return keys
}

func decodeEither(data []byte, doc *document, unmarshal func([]byte, any) error) error {
	err := unmarshal(data, doc)
	if err == nil {
		return nil
	}
	var list []Highlight
	if unmarshal(data, &list) == nil {
		doc.Highlights = list
		return nil
	}
	return err
}

// Load reads a local highlight file, choosing the decoder from its extension.
func Load(path string) ([]Highlight, error) {
	f, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSourceRead, err)
	}
	defer func() { _ = file.Close() }()
	return Decode(file, f)
}

// Defaults returns the built-in Ethiopian public holidays with fixed dates.
// Movable feasts (Fasika, Eid) are not included.
func Defaults() ([]Highlight, error) {
	hs, err := Decode(bytes.NewReader(defaultHolidays), FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDefaultsLoad, err)
	}
	return hs, nil
}
