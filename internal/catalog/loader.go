package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// fileSchema is the root structure of a catalog YAML file.
type fileSchema struct {
	Quotes []domain.Quote `yaml:"quotes"`
	Jokes  []domain.Joke  `yaml:"jokes"`
}

// Loader reads a catalog from a YAML file, or from the embedded default
// catalog when no path is set.
type Loader struct {
	filePath string
}

// NewLoader creates a loader. An empty filePath selects the embedded catalog.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Source describes where Load reads from, for logs.
func (l *Loader) Source() string {
	if l.filePath == "" {
		return "embedded"
	}
	return l.filePath
}

// Load reads, parses and validates the catalog.
func (l *Loader) Load(opts ...Option) (*Catalog, error) {
	data := defaultCatalog
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	return Parse(data, opts...)
}

// Parse builds a catalog from YAML data.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	quotes, err := normalizeQuotes(schema.Quotes)
	if err != nil {
		return nil, err
	}
	jokes, err := normalizeJokes(schema.Jokes)
	if err != nil {
		return nil, err
	}

	return New(quotes, jokes, opts...), nil
}

func normalizeQuotes(in []domain.Quote) ([]domain.Quote, error) {
	if len(in) == 0 {
		return nil, errors.New("catalog has no quotes")
	}
	seen := make(map[string]bool, len(in))
	out := make([]domain.Quote, 0, len(in))
	for i, q := range in {
		q.ID = strings.TrimSpace(q.ID)
		q.Text = strings.TrimSpace(q.Text)
		q.Author = strings.TrimSpace(q.Author)
		q.Category = strings.TrimSpace(q.Category)

		switch {
		case q.ID == "":
			return nil, fmt.Errorf("quote #%d: id is required", i+1)
		case seen[q.ID]:
			return nil, fmt.Errorf("quote %q: duplicate id", q.ID)
		case q.Text == "":
			return nil, fmt.Errorf("quote %q: text is required", q.ID)
		case q.Author == "":
			return nil, fmt.Errorf("quote %q: author is required", q.ID)
		case q.Category == "":
			return nil, fmt.Errorf("quote %q: category is required", q.ID)
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out, nil
}

func normalizeJokes(in []domain.Joke) ([]domain.Joke, error) {
	if len(in) == 0 {
		return nil, errors.New("catalog has no jokes")
	}
	seen := make(map[string]bool, len(in))
	out := make([]domain.Joke, 0, len(in))
	for i, j := range in {
		j.ID = strings.TrimSpace(j.ID)
		j.Text = strings.TrimSpace(j.Text)
		j.Category = strings.TrimSpace(j.Category)

		switch {
		case j.ID == "":
			return nil, fmt.Errorf("joke #%d: id is required", i+1)
		case seen[j.ID]:
			return nil, fmt.Errorf("joke %q: duplicate id", j.ID)
		case j.Text == "":
			return nil, fmt.Errorf("joke %q: text is required", j.ID)
		case j.Category == "":
			return nil, fmt.Errorf("joke %q: category is required", j.ID)
		}
		seen[j.ID] = true
		out = append(out, j)
	}
	return out, nil
}
