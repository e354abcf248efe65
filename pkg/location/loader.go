package location

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/locations.yaml
var embeddedCatalog embed.FS

const embeddedCatalogPath = "data/locations.yaml"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the bundled India / United States catalog. The embedded
// document is validated in tests, so a parse failure here is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		catalog, err := Load(embeddedCatalog, embeddedCatalogPath)
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// EmbeddedFS exposes the bundled catalog document.
func EmbeddedFS() fs.FS {
	return embeddedCatalog
}

// Load reads a JSON or YAML catalog document from fsys.
func Load(fsys fs.FS, path string) (*Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("location: filesystem is required")
	}
	if !isCatalogFile(path) {
		return nil, fmt.Errorf("location: unsupported catalog file %q", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("location: read %s: %w", path, err)
	}
	return Parse(data, path)
}

type documentFile struct {
	Countries []countryFile `json:"countries" yaml:"countries"`
}

type countryFile struct {
	Name        string      `json:"name" yaml:"name"`
	DialingCode string      `json:"dialingCode" yaml:"dialingCode"`
	States      []stateFile `json:"states" yaml:"states"`
}

type stateFile struct {
	Name   string   `json:"name" yaml:"name"`
	Cities []string `json:"cities" yaml:"cities"`
}

// Parse decodes a catalog document. JSON is attempted first, then YAML; the
// source is only used in error messages.
func Parse(data []byte, source string) (*Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("location: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("location: parse %s: invalid JSON or YAML", source)
		}
	}

	countries := make([]Country, 0, len(doc.Countries))
	for _, raw := range doc.Countries {
		country := Country{Name: raw.Name, DialingCode: raw.DialingCode}
		for _, state := range raw.States {
			country.States = append(country.States, State{Name: state.Name, Cities: state.Cities})
		}
		countries = append(countries, country)
	}

	catalog, err := New(countries...)
	if err != nil {
		return nil, fmt.Errorf("location: %s: %w", source, err)
	}
	return catalog, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
