// Package itemlist rebuilds ordered record lists from a flat message catalog.
//
// A section stores its entries as {namespace}.items.{i}.{field}. Entries are
// probed from index 0 upwards and the scan ends at the first index whose
// required fields do not all resolve. A gap therefore hides every entry after
// it.
package itemlist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mfall/portfolio/internal/catalog"
)

const (
	// DefaultMaxItems bounds the top-level scan when a schema sets no limit.
	DefaultMaxItems = 20
	// MaxListItems bounds every nested list scan.
	MaxListItems = 10

	itemsSegment = "items"
)

// ErrNotText is returned when a required field holds a list.
var ErrNotText = errors.New("field holds a list, want text")

// Lookuper is the read side of a message catalog.
type Lookuper interface {
	Lookup(key string) (catalog.Value, bool, error)
}

// Schema describes the fields of one section's records.
type Schema struct {
	Required []string
	Optional []string
	Lists    []string
	MaxItems int
}

func (s Schema) maxItems() int {
	if s.MaxItems <= 0 {
		return DefaultMaxItems
	}
	return s.MaxItems
}

// Field is one resolved attribute of a record.
type Field struct {
	Name   string
	Text   string
	List   []string
	IsList bool
}

// Record is one resolved entry. Fields keep schema order.
type Record struct {
	Index  int
	fields []Field
}

// Fields returns a copy of the record's fields.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Get returns the named field.
func (r Record) Get(name string) (Field, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Has reports whether the named field resolved.
func (r Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Text returns the named text field, or "" when absent.
func (r Record) Text(name string) string {
	f, ok := r.Get(name)
	if !ok || f.IsList {
		return ""
	}
	return f.Text
}

// List returns the named list field, or nil when absent.
func (r Record) List(name string) []string {
	f, ok := r.Get(name)
	if !ok || !f.IsList {
		return nil
	}
	out := make([]string, len(f.List))
	copy(out, f.List)
	return out
}

// Resolve scans src for the records of namespace described by schema.
// Lookup errors are returned wrapped; absent keys never are.
func Resolve(src Lookuper, namespace string, schema Schema) ([]Record, error) {
	records := []Record{}
	for i := 0; i < schema.maxItems(); i++ {
		record, ok, err := resolveRecord(src, namespace, i, schema)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		records = append(records, record)
	}
	return records, nil
}

func resolveRecord(src Lookuper, namespace string, index int, schema Schema) (Record, bool, error) {
	record := Record{Index: index}

	for _, name := range schema.Required {
		key, suffix := fieldPath(namespace, index, name)
		text, ok, err := lookupText(src, key, suffix)
		if err != nil {
			return Record{}, false, err
		}
		if !ok {
			return Record{}, false, nil
		}
		record.fields = append(record.fields, Field{Name: name, Text: text})
	}

	for _, name := range schema.Optional {
		key, suffix := fieldPath(namespace, index, name)
		text, ok, err := lookupText(src, key, suffix)
		if notScalar(err) {
			continue
		}
		if err != nil {
			return Record{}, false, err
		}
		if ok {
			record.fields = append(record.fields, Field{Name: name, Text: text})
		}
	}

	for _, name := range schema.Lists {
		list, err := resolveList(src, namespace, index, name)
		if err != nil {
			return Record{}, false, err
		}
		if len(list) > 0 {
			record.fields = append(record.fields, Field{Name: name, List: list, IsList: true})
		}
	}

	return record, true, nil
}

func resolveList(src Lookuper, namespace string, index int, name string) ([]string, error) {
	var out []string
	for j := 0; j < MaxListItems; j++ {
		key, suffix := fieldPath(namespace, index, name+"."+strconv.Itoa(j))
		text, ok, err := lookupText(src, key, suffix)
		if notScalar(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, text)
	}
	return out, nil
}

// notScalar reports a value that exists but is a list or a group. Optional
// fields and list elements treat it as absent.
func notScalar(err error) bool {
	return errors.Is(err, ErrNotText) || errors.Is(err, catalog.ErrInsufficientPath)
}

// lookupText resolves key to text. ok is false when the key is absent or
// its value looks like a lookup fallback rather than real content.
func lookupText(src Lookuper, key, suffix string) (string, bool, error) {
	value, found, err := src.Lookup(key)
	if err != nil {
		return "", false, fmt.Errorf("resolve %s: %w", key, err)
	}
	if !found {
		return "", false, nil
	}
	if value.IsList {
		return "", false, fmt.Errorf("resolve %s: %w", key, ErrNotText)
	}
	if IsFallback(key, suffix, value.Text) {
		return "", false, nil
	}
	return value.Text, true, nil
}

// IsFallback reports whether text is what a message lookup hands back for
// a key that does not exist: empty, the key itself, the namespace-less
// suffix, or anything still carrying the items. path prefix.
func IsFallback(key, suffix, text string) bool {
	return text == "" ||
		text == key ||
		text == suffix ||
		strings.HasPrefix(text, itemsSegment+".")
}

func fieldPath(namespace string, index int, field string) (key, suffix string) {
	suffix = itemsSegment + "." + strconv.Itoa(index) + "." + field
	if namespace == "" {
		return suffix, suffix
	}
	return namespace + "." + suffix, suffix
}
