package translator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay file layout:
//
//	snippets:
//	  - source: terraform
//	    target: pulumi
//	    body: |
//	      ...
type snippetFile struct {
	Snippets []snippetEntry `yaml:"snippets"`
}

type snippetEntry struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Body   string `yaml:"body"`
}

func ParseTable(data []byte) (Table, error) {
	var f snippetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode snippets: %w", err)
	}
	out := make(Table, len(f.Snippets))
	for i, e := range f.Snippets {
		src, err := ParseFormat(e.Source)
		if err != nil {
			return nil, fmt.Errorf("snippet %d: source: %w", i, err)
		}
		dst, err := ParseFormat(e.Target)
		if err != nil {
			return nil, fmt.Errorf("snippet %d: target: %w", i, err)
		}
		if e.Body == "" {
			return nil, fmt.Errorf("snippet %d (%s->%s): empty body", i, src, dst)
		}
		out[PairKey{Source: src, Target: dst}] = e.Body
	}
	return out, nil
}

func LoadTableFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTable(data)
}
