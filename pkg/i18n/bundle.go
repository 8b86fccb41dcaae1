package i18n

import (
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bundle holds the translations for one language: the nested tree as
// published and a flattened dot-key view for O(1) lookups.
// A Bundle is never modified after it is parsed.
type Bundle struct {
	tree map[string]any
	flat map[string]string
	code Code
}

// NewBundle builds a bundle from a nested translation tree.
func NewBundle(code Code, tree map[string]any) *Bundle {
	if tree == nil {
		tree = map[string]any{}
	}
	return &Bundle{
		code: code,
		tree: tree,
		flat: flattenTranslations(tree, ""),
	}
}

// ParseBundle decodes a bundle file. The format is chosen by the extension of
// name: .yaml and .yml are YAML, anything else is JSON.
func ParseBundle(code Code, name string, data []byte) (*Bundle, error) {
	var tree map[string]any

	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &tree)
	default:
		err = json.Unmarshal(data, &tree)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %s", ErrInvalidBundle, name, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: %q is not an object", ErrInvalidBundle, name)
	}

	return NewBundle(code, tree), nil
}

// Code returns the language the bundle belongs to.
func (b *Bundle) Code() Code {
	return b.code
}

// Get resolves a dot-separated key. Keys pointing at a nested object do not
// resolve.
func (b *Bundle) Get(key string) (string, bool) {
	v, ok := b.flat[key]
	return v, ok
}

// Len returns the number of leaf keys.
func (b *Bundle) Len() int {
	return len(b.flat)
}

// Keys returns every leaf key, sorted.
func (b *Bundle) Keys() []string {
	return slices.Sorted(maps.Keys(b.flat))
}

// Tree returns the nested translation tree.
func (b *Bundle) Tree() map[string]any {
	return b.tree
}

// MarshalJSON encodes the nested tree, matching the published bundle format.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.tree)
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		case nil:
			// null leaves do not resolve
		case []any:
			// arrays are not addressable by dot keys
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
