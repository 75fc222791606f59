package cite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Citekey is a standardized prefix:accession pair.
type Citekey struct {
	Input     string
	Prefix    string
	Accession string
}

// ID returns the standard identifier, e.g. "doi:10.7717/peerj.705".
func (c Citekey) ID() string {
	return c.Prefix + ":" + c.Accession
}

var knownPrefixes = map[string]bool{
	"arxiv":    true,
	"doi":      true,
	"isbn":     true,
	"pmcid":    true,
	"pmid":     true,
	"raw":      true,
	"url":      true,
	"wikidata": true,
}

var (
	arxivPattern    = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	pmcidPattern    = regexp.MustCompile(`^PMC\d+$`)
	pmidPattern     = regexp.MustCompile(`^\d+$`)
	wikidataPattern = regexp.MustCompile(`^Q\d+$`)
)

var errNoPrefix = errors.New("no prefix")

// ParseCitekey splits input into prefix and accession. Without a prefix and
// with infer set, the prefix is guessed from the accession's shape.
func ParseCitekey(input string, infer bool) (Citekey, error) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "@")
	if input == "" {
		return Citekey{}, fmt.Errorf("empty citekey")
	}

	if prefix, accession, ok := strings.Cut(input, ":"); ok && !strings.HasPrefix(accession, "//") {
		prefix = strings.ToLower(prefix)
		if !knownPrefixes[prefix] {
			return Citekey{}, fmt.Errorf("unsupported citekey prefix %q in %q", prefix, input)
		}
		if accession == "" {
			return Citekey{}, fmt.Errorf("citekey %q has an empty accession", input)
		}
		return standardize(Citekey{Input: input, Prefix: prefix, Accession: accession}), nil
	}

	if !infer {
		return Citekey{Input: input}, errNoPrefix
	}

	prefix := inferPrefix(input)
	if prefix == "" {
		return Citekey{}, fmt.Errorf("could not infer a prefix for citekey %q", input)
	}
	return standardize(Citekey{Input: input, Prefix: prefix, Accession: input}), nil
}

func inferPrefix(accession string) string {
	switch {
	case strings.HasPrefix(accession, "10."):
		return "doi"
	case strings.HasPrefix(accession, "http://"), strings.HasPrefix(accession, "https://"):
		return "url"
	case pmcidPattern.MatchString(accession):
		return "pmcid"
	case arxivPattern.MatchString(accession):
		return "arxiv"
	case wikidataPattern.MatchString(accession):
		return "wikidata"
	case pmidPattern.MatchString(accession):
		return "pmid"
	default:
		return ""
	}
}

// standardize applies per-prefix accession normalisation.
func standardize(c Citekey) Citekey {
	switch c.Prefix {
	case "doi":
		c.Accession = strings.ToLower(c.Accession)
	case "pmcid":
		c.Accession = strings.ToUpper(c.Accession)
	case "isbn":
		c.Accession = strings.ReplaceAll(c.Accession, "-", "")
	}
	return c
}
