package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrNoCatalog is returned when a bundle holds no catalog for a locale.
var ErrNoCatalog = errors.New("no catalog for locale")

//go:embed messages
var embeddedFS embed.FS

// Bundle holds one catalog per locale.
type Bundle struct {
	defaultLocale string
	catalogs      map[string]*Catalog
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded(defaultLocale string) (*Bundle, error) {
	sub, err := fs.Sub(embeddedFS, "messages")
	if err != nil {
		return nil, fmt.Errorf("open embedded messages: %w", err)
	}
	return LoadFromFS(sub, defaultLocale)
}

// LoadFromFS loads <locale>/<file>.json and <locale>/<file>.yaml catalogs.
// Files of the same locale share one key space.
func LoadFromFS(fsys fs.FS, defaultLocale string) (*Bundle, error) {
	var paths []string
	for _, pattern := range []string{"*/*.json", "*/*.yaml", "*/*.yml"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	builders := map[string]*builder{}
	for _, p := range paths {
		locale := path.Base(path.Dir(p))
		b, ok := builders[locale]
		if !ok {
			b = newBuilder()
			builders[locale] = b
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		switch path.Ext(p) {
		case ".json":
			err = addJSON(b, data)
		default:
			err = addYAML(b, data)
		}
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
	}

	defaultLocale = strings.TrimSpace(defaultLocale)
	if _, ok := builders[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q: %w", defaultLocale, ErrNoCatalog)
	}

	bundle := &Bundle{defaultLocale: defaultLocale, catalogs: map[string]*Catalog{}}
	for locale, b := range builders {
		bundle.catalogs[locale] = b.catalog(locale)
	}
	return bundle, nil
}

// Catalog returns the catalog for locale.
func (b *Bundle) Catalog(locale string) (*Catalog, error) {
	if b == nil {
		return nil, ErrNoCatalog
	}
	c, ok := b.catalogs[strings.TrimSpace(locale)]
	if !ok {
		return nil, fmt.Errorf("locale %q: %w", locale, ErrNoCatalog)
	}
	return c, nil
}

// Default returns the default locale.
func (b *Bundle) Default() string {
	if b == nil {
		return ""
	}
	return b.defaultLocale
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.catalogs))
	for locale := range b.catalogs {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func addJSON(b *builder, data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("top level must be an object")
	}
	return walkJSON(b, "", root)
}

func walkJSON(b *builder, prefix string, r gjson.Result) error {
	switch {
	case r.IsObject():
		b.group(prefix)
		var err error
		r.ForEach(func(key, value gjson.Result) bool {
			err = walkJSON(b, joinKey(prefix, key.String()), value)
			return err == nil
		})
		return err
	case r.IsArray():
		elems := r.Array()
		if list, ok := jsonStrings(elems); ok {
			if err := b.leaf(prefix, Value{List: list, IsList: true}); err != nil {
				return err
			}
		} else {
			b.group(prefix)
		}
		for i, elem := range elems {
			if err := walkJSON(b, joinKey(prefix, strconv.Itoa(i)), elem); err != nil {
				return err
			}
		}
		return nil
	case r.Type == gjson.Null:
		return nil
	default:
		return b.leaf(prefix, Value{Text: r.String()})
	}
}

func jsonStrings(elems []gjson.Result) ([]string, bool) {
	out := make([]string, 0, len(elems))
	for _, elem := range elems {
		if elem.IsObject() || elem.IsArray() || elem.Type == gjson.Null {
			return nil, false
		}
		out = append(out, elem.String())
	}
	return out, true
}

func addYAML(b *builder, data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return fmt.Errorf("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("top level must be a mapping")
	}
	return walkYAML(b, "", root)
}

func walkYAML(b *builder, prefix string, n *yaml.Node) error {
	switch n.Kind {
	case yaml.AliasNode:
		return walkYAML(b, prefix, n.Alias)
	case yaml.MappingNode:
		b.group(prefix)
		for i := 0; i+1 < len(n.Content); i += 2 {
			if err := walkYAML(b, joinKey(prefix, n.Content[i].Value), n.Content[i+1]); err != nil {
				return err
			}
		}
		return nil
	case yaml.SequenceNode:
		if list, ok := yamlStrings(n.Content); ok {
			if err := b.leaf(prefix, Value{List: list, IsList: true}); err != nil {
				return err
			}
		} else {
			b.group(prefix)
		}
		for i, elem := range n.Content {
			if err := walkYAML(b, joinKey(prefix, strconv.Itoa(i)), elem); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		return b.leaf(prefix, Value{Text: n.Value})
	default:
		return fmt.Errorf("unsupported yaml node at %q", prefix)
	}
}

func yamlStrings(nodes []*yaml.Node) ([]string, bool) {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
		}
		if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
			return nil, false
		}
		out = append(out, n.Value)
	}
	return out, true
}
