package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInsufficientPath is returned when a key addresses a group of messages
// rather than a single message.
var ErrInsufficientPath = errors.New("key addresses a message group")

// Value is one leaf of a catalog. List is set when the source held an array
// of primitives at that path.
type Value struct {
	Text   string
	List   []string
	IsList bool
}

func (v Value) String() string {
	if v.IsList {
		return strings.Join(v.List, ", ")
	}
	return v.Text
}

// Catalog is the flattened, read-only message set for one locale.
type Catalog struct {
	locale   string
	messages map[string]Value
	groups   map[string]struct{}
}

// New builds a catalog from flat dot-path keys. Every proper prefix of a key
// becomes a group.
func New(locale string, messages map[string]string) *Catalog {
	b := newBuilder()
	for key, value := range messages {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		b.messages[key] = Value{Text: value}
		for i := strings.LastIndexByte(key, '.'); i > 0; i = strings.LastIndexByte(key[:i], '.') {
			b.groups[key[:i]] = struct{}{}
		}
	}
	return b.catalog(locale)
}

// Locale returns the locale identifier the catalog was loaded for.
func (c *Catalog) Locale() string {
	if c == nil {
		return ""
	}
	return c.locale
}

// Lookup returns the value stored at key. A missing key is reported through
// the bool, never as an error.
func (c *Catalog) Lookup(key string) (Value, bool, error) {
	if c == nil {
		return Value{}, false, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return Value{}, false, nil
	}
	if value, ok := c.messages[key]; ok {
		return value, true, nil
	}
	if _, ok := c.groups[key]; ok {
		return Value{}, false, fmt.Errorf("lookup %q: %w", key, ErrInsufficientPath)
	}
	return Value{}, false, nil
}

// Text returns the message text at key, or the key itself when no text
// message exists there.
func (c *Catalog) Text(key string) string {
	value, ok, err := c.Lookup(key)
	if err != nil || !ok || value.IsList {
		return key
	}
	return value.Text
}

// List returns the list stored at key, or nil.
func (c *Catalog) List(key string) []string {
	value, ok, err := c.Lookup(key)
	if err != nil || !ok || !value.IsList {
		return nil
	}
	out := make([]string, len(value.List))
	copy(out, value.List)
	return out
}

// Has reports whether key holds a message.
func (c *Catalog) Has(key string) bool {
	_, ok, err := c.Lookup(key)
	return ok && err == nil
}

// Len returns the number of addressable messages.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.messages)
}

// Keys returns all message keys in sorted order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.messages))
	for key := range c.messages {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

type builder struct {
	messages map[string]Value
	groups   map[string]struct{}
}

func newBuilder() *builder {
	return &builder{
		messages: map[string]Value{},
		groups:   map[string]struct{}{},
	}
}

func (b *builder) leaf(key string, value Value) error {
	if key == "" {
		return fmt.Errorf("message without a key")
	}
	if _, exists := b.messages[key]; exists {
		return fmt.Errorf("duplicate key %q", key)
	}
	b.messages[key] = value
	return nil
}

func (b *builder) group(key string) {
	if key != "" {
		b.groups[key] = struct{}{}
	}
}

func (b *builder) catalog(locale string) *Catalog {
	return &Catalog{
		locale:   locale,
		messages: b.messages,
		groups:   b.groups,
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
