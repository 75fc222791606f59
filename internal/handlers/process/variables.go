package process

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SplitVariablesPath splits "namespace=path" into its parts. A value without
// a valid namespace prefix is taken whole as the path.
func SplitVariablesPath(value string) (namespace, path string) {
	if ns, p, ok := strings.Cut(value, "="); ok && namespacePattern.MatchString(ns) {
		return ns, p
	}
	return "", value
}

// ParseVariables decodes a template variables file by extension: .yaml/.yml
// or .toml. Anything else is read as JSON.
func ParseVariables(path string, data []byte) (map[string]any, error) {
	vars := make(map[string]any)
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &vars)
	case ".toml":
		_, err = toml.Decode(string(data), &vars)
	default:
		err = json.Unmarshal(data, &vars)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vars, nil
}

// merge copies src into dst, under namespace when set. Later files win.
func merge(dst map[string]any, namespace string, src map[string]any) {
	if namespace == "" {
		for k, v := range src {
			dst[k] = v
		}
		return
	}
	dst[namespace] = src
}
