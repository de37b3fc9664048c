package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDistinguishesMissingFromGroups(t *testing.T) {
	c := New("en", map[string]string{
		"experience.items.0.title": "Engineer",
	})

	value, ok, err := c.Lookup("experience.items.0.title")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Engineer", value.Text)

	_, ok, err = c.Lookup("experience.items.1.title")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Lookup("experience.items.0")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInsufficientPath)
}

func TestTextFallsBackToKey(t *testing.T) {
	c := New("fr", map[string]string{"about.title": "À propos"})

	assert.Equal(t, "À propos", c.Text("about.title"))
	assert.Equal(t, "about.detailedDescription", c.Text("about.detailedDescription"))
	assert.Equal(t, "about", c.Text("about"))
}

func TestLoadFromFSFlattensJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"en/common.json": {Data: []byte(`{
			"about": {"keyPoints": ["one", "two"], "title": "About"},
			"skills": {"items": [{"name": "Go", "level": 4}, {"name": "SQL", "level": null}]}
		}`)},
		"en/extra.yaml":  {Data: []byte("awards:\n  items:\n    - title: Prize\n      organization: Org\n      date: \"2023\"\n")},
		"fr/common.json": {Data: []byte(`{"about": {"title": "À propos"}}`)},
	}

	bundle, err := LoadFromFS(fsys, "fr")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, bundle.Locales())
	assert.Equal(t, "fr", bundle.Default())

	en, err := bundle.Catalog("en")
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, en.List("about.keyPoints"))
	assert.Equal(t, "two", en.Text("about.keyPoints.1"))
	assert.Equal(t, "4", en.Text("skills.items.0.level"))
	assert.False(t, en.Has("skills.items.1.level"))
	assert.Equal(t, "Prize", en.Text("awards.items.0.title"))
	assert.Equal(t, "2023", en.Text("awards.items.0.date"))

	_, _, err = en.Lookup("skills.items")
	assert.ErrorIs(t, err, ErrInsufficientPath)
}

func TestLoadFromFSRejectsDuplicateKeysWithinLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"en/a.json": {Data: []byte(`{"hero": {"title": "A"}}`)},
		"en/b.yaml": {Data: []byte("hero:\n  title: B\n")},
	}

	_, err := LoadFromFS(fsys, "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestLoadFromFSRequiresDefaultLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"en/common.json": {Data: []byte(`{"hero": {"title": "A"}}`)},
	}

	_, err := LoadFromFS(fsys, "fr")
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestLoadFromFSRejectsInvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"en/common.json": {Data: []byte(`{"hero": `)},
	}

	_, err := LoadFromFS(fsys, "en")
	require.Error(t, err)
}

func TestLoadEmbeddedShipsBothLocales(t *testing.T) {
	bundle, err := LoadEmbedded("fr")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, bundle.Locales())

	for _, locale := range bundle.Locales() {
		c, err := bundle.Catalog(locale)
		require.NoError(t, err)
		assert.True(t, c.Has("hero.title"), locale)
		assert.True(t, c.Has("experience.items.0.title"), locale)
		assert.NotEmpty(t, c.List("about.keyPoints"), locale)
	}

	_, err = bundle.Catalog("de")
	assert.ErrorIs(t, err, ErrNoCatalog)
}
