package currencyinput

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

// CatalogLoader builds CatalogData from the embedded defaults, an optional data
// file and per locale override files. Later sources win.
type CatalogLoader struct {
	path      string
	overrides map[string]string
}

// NewCatalogLoader creates a loader. An empty path loads only the embedded data.
func NewCatalogLoader(path string) *CatalogLoader {
	return &CatalogLoader{
		path:      path,
		overrides: make(map[string]string),
	}
}

// AddOverride registers a file whose entries are merged after the main data.
func (l *CatalogLoader) AddOverride(locale, path string) {
	l.overrides[locale] = path
}

// Load decodes and merges every configured source.
func (l *CatalogLoader) Load() (*CatalogData, error) {
	var data CatalogData
	defaults, err := decodeCatalog("catalog.yaml", defaultCatalogYAML)
	if err != nil {
		return nil, fmt.Errorf("currencyinput: parse default catalog: %w", err)
	}
	mergeCatalogData(&data, defaults)

	if l.path != "" {
		source, err := readCatalogFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("currencyinput: load catalog: %w", err)
		}
		mergeCatalogData(&data, source)
	}

	locales := make([]string, 0, len(l.overrides))
	for locale := range l.overrides {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		source, err := readCatalogFile(l.overrides[locale])
		if err != nil {
			return nil, fmt.Errorf("currencyinput: load catalog override for %q: %w", locale, err)
		}
		mergeCatalogData(&data, source)
	}

	return &data, nil
}

func readCatalogFile(path string) (*CatalogData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeCatalog(path, raw)
}

func decodeCatalog(path string, raw []byte) (*CatalogData, error) {
	var data CatalogData

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("yaml parse error in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	return &data, nil
}

// mergeCatalogData merges source into dest (source takes precedence).
func mergeCatalogData(dest, source *CatalogData) {
	if source == nil {
		return
	}

	if source.DefaultLocale != "" {
		dest.DefaultLocale = source.DefaultLocale
	}

	if source.CurrencySymbols != nil {
		if dest.CurrencySymbols == nil {
			dest.CurrencySymbols = make(map[string]string)
		}
		for code, symbol := range source.CurrencySymbols {
			dest.CurrencySymbols[strings.ToUpper(code)] = symbol
		}
	}

	if source.Locales != nil {
		if dest.Locales == nil {
			dest.Locales = make(map[string]LocaleFormat)
		}
		for locale, format := range source.Locales {
			dest.Locales[canonicalLocale(locale)] = format
		}
	}
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *StaticCatalog
	defaultCatalogErr  error
)

// DefaultCatalog returns the catalog built from the embedded data.
func DefaultCatalog() (*StaticCatalog, error) {
	defaultCatalogOnce.Do(func() {
		data, err := NewCatalogLoader("").Load()
		if err != nil {
			defaultCatalogErr = err
			return
		}
		defaultCatalog, defaultCatalogErr = NewStaticCatalog(data)
	})
	return defaultCatalog, defaultCatalogErr
}
