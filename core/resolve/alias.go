package resolve

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// Alias maps a canonical state label onto the phrases people use for it.
type Alias struct {
	Label    string   `yaml:"label"`
	Synonyms []string `yaml:"synonyms"`
}

// matches reports whether any synonym contains name or is contained in it.
func (a Alias) matches(name string) bool {
	for _, syn := range a.Synonyms {
		if strings.Contains(name, syn) || strings.Contains(syn, name) {
			return true
		}
	}
	return false
}

var aliases = mustParseAliases(aliasesYAML)

func parseAliases(data []byte) ([]Alias, error) {
	var out []Alias
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse alias table: %w", err)
	}
	for i := range out {
		out[i].Label = strings.ToLower(strings.TrimSpace(out[i].Label))
		if out[i].Label == "" {
			return nil, fmt.Errorf("alias entry %d has no label", i)
		}
		for j, syn := range out[i].Synonyms {
			out[i].Synonyms[j] = strings.ToLower(strings.TrimSpace(syn))
		}
	}
	return out, nil
}

func mustParseAliases(data []byte) []Alias {
	a, err := parseAliases(data)
	if err != nil {
		panic(err)
	}
	return a
}
