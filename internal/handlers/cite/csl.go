package cite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is a CSL data item. Manual references may carry arbitrary fields, so
// items stay untyped.
type Item map[string]any

// ID returns the item's id field, or "".
func (i Item) ID() string {
	id, _ := i["id"].(string)
	return id
}

var standardFields = map[string]string{
	"doi":   "DOI",
	"pmid":  "PMID",
	"pmcid": "PMCID",
	"isbn":  "ISBN",
	"url":   "URL",
}

// NewItem builds the minimal item generated for a citekey.
func NewItem(c Citekey) Item {
	item := Item{
		"id":   c.ID(),
		"type": "entry",
		"note": "standard_id: " + c.ID(),
	}
	if field, ok := standardFields[c.Prefix]; ok {
		item[field] = c.Accession
	}
	switch c.Prefix {
	case "arxiv":
		item["URL"] = "https://arxiv.org/abs/" + c.Accession
		item["number"] = c.Accession
	case "wikidata":
		item["URL"] = "https://www.wikidata.org/wiki/" + c.Accession
	}
	return item
}

var cslVariables = map[string]bool{
	"abstract": true, "accessed": true, "author": true, "container-title": true,
	"DOI": true, "edition": true, "editor": true, "genre": true, "id": true,
	"ISBN": true, "ISSN": true, "issue": true, "issued": true, "keyword": true,
	"language": true, "note": true, "number": true, "page": true, "PMCID": true,
	"PMID": true, "publisher": true, "source": true, "title": true, "type": true,
	"URL": true, "version": true, "volume": true,
}

// Prune drops fields that are not CSL variables or have empty values and
// returns the dropped field names, sorted.
func Prune(item Item) []string {
	var dropped []string
	for key, value := range item {
		if !cslVariables[key] || isEmpty(value) {
			dropped = append(dropped, key)
			delete(item, key)
		}
	}
	sort.Strings(dropped)
	return dropped
}

func isEmpty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// ParseBibliography reads CSL items from a JSON or YAML document, chosen by
// the file extension. A single object is accepted as a one-item list.
func ParseBibliography(path string, data []byte) ([]Item, error) {
	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported bibliography format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}

	var list []any
	switch v := raw.(type) {
	case []any:
		list = v
	case map[string]any:
		list = []any{v}
	default:
		return nil, fmt.Errorf("parse %s: expected a list of CSL items", path)
	}

	items := make([]Item, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parse %s: item %d is not an object", path, i)
		}
		item := Item(m)
		if item.ID() == "" {
			return nil, fmt.Errorf("parse %s: item %d has no id", path, i)
		}
		items = append(items, item)
	}
	return items, nil
}

// Encode renders items as csljson or cslyaml.
func Encode(items []Item, format string) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	switch format {
	case FormatCSLJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(items); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatCSLYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("format %q is not a CSL data format", format)
	}
}
