package site

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/portfolio/pkg/card"
	"github.com/dmitrymomot/portfolio/pkg/i18n"
	"github.com/dmitrymomot/portfolio/pkg/slug"
)

//go:embed data/projects.yaml
var defaultProjects []byte

//go:embed locales/*.yaml
var localeFiles embed.FS

// Locales returns the embedded translation files.
func Locales() fs.FS {
	sub, err := fs.Sub(localeFiles, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// ProjectText is the per-language copy of a project.
type ProjectText struct {
	Category string `yaml:"category"`
	Short    string `yaml:"short"`
	Long     string `yaml:"long"`
}

// Entry is one project of the catalogue.
type Entry struct {
	Slug   string                 `yaml:"slug"`
	Kind   string                 `yaml:"kind"`
	Size   string                 `yaml:"size"`
	Skills []string               `yaml:"skills"`
	Text   map[string]ProjectText `yaml:"text"`
}

// Project returns the card input for lang, falling back to English copy.
func (e Entry) Project(lang i18n.Lang) (card.Project, error) {
	kind, err := card.ParseProjectKind(e.Kind)
	if err != nil {
		return card.Project{}, err
	}
	size, err := card.ParseSizeState(e.Size)
	if err != nil {
		return card.Project{}, err
	}

	text, ok := e.Text[lang.Code()]
	if !ok {
		text = e.Text[i18n.DefaultLang.Code()]
	}
	return card.Project{
		Size:      size,
		Kind:      kind,
		Category:  text.Category,
		ShortText: text.Short,
		LongText:  text.Long,
		Skills:    slices.Clone(e.Skills),
	}, nil
}

// Catalogue is the ordered list of projects shown on the page.
type Catalogue struct {
	entries []Entry
}

type catalogueFile struct {
	Projects []Entry `yaml:"projects"`
}

// ParseCatalogue decodes and checks a catalogue. Every entry must render in
// every supported language and have a unique slug. A missing slug is derived
// from the English category.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalogue, err)
	}
	if len(file.Projects) == 0 {
		return nil, fmt.Errorf("%w: no projects", ErrInvalidCatalogue)
	}

	seen := make(map[string]bool, len(file.Projects))
	for i := range file.Projects {
		e := &file.Projects[i]
		if e.Slug == "" {
			e.Slug = slug.Make(e.Text[i18n.DefaultLang.Code()].Category)
		}
		if !slug.Valid(e.Slug) || seen[e.Slug] {
			return nil, fmt.Errorf("%w: project %d has an invalid or duplicate slug %q", ErrInvalidCatalogue, i, e.Slug)
		}
		seen[e.Slug] = true

		for _, lang := range i18n.Langs {
			p, err := e.Project(lang)
			if err == nil {
				err = card.Validate(p)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: project %q (%s): %w", ErrInvalidCatalogue, e.Slug, lang.Code(), err)
			}
		}
	}
	return &Catalogue{entries: file.Projects}, nil
}

// LoadCatalogue reads the catalogue at path, or the embedded one when path
// is empty.
func LoadCatalogue(path string) (*Catalogue, error) {
	if path == "" {
		return ParseCatalogue(defaultProjects)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalogue, err)
	}
	return ParseCatalogue(data)
}

func (c *Catalogue) Entries() []Entry {
	return slices.Clone(c.entries)
}

func (c *Catalogue) Lookup(name string) (Entry, bool) {
	for _, e := range c.entries {
		if e.Slug == name {
			return e, true
		}
	}
	return Entry{}, false
}
