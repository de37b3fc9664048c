package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfall/portfolio/internal/catalog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]int{
		"7":   5,
		"0":   1,
		"abc": 5,
		"3":   3,
		" 2 ": 2,
		"-4":  1,
		"":    5,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseLevel(raw), "level %q", raw)
	}
}

func TestLoadSkillsClampsLevels(t *testing.T) {
	c := catalog.New("en", map[string]string{
		"skills.items.0.name":  "Accounting",
		"skills.items.0.level": "7",
		"skills.items.1.name":  "Golf",
		"skills.items.1.level": "0",
		"skills.items.2.name":  "Chess",
		"skills.items.2.level": "abc",
		"skills.items.3.name":  "No level",
	})

	skills, err := LoadSkills(c)
	require.NoError(t, err)
	require.Len(t, skills, 3)
	assert.Equal(t, 5, skills[0].Level)
	assert.Equal(t, 1, skills[1].Level)
	assert.Equal(t, 5, skills[2].Level)
	assert.Equal(t, 100, skills[0].Percent())
	assert.Equal(t, "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/xero.svg", skills[0].Icon)
	assert.Equal(t, "/images/skills/golf.svg", skills[1].Icon)
}

func TestLoadExperienceDerivesAttestation(t *testing.T) {
	c := catalog.New("en", map[string]string{
		"experience.items.0.title":       "Engineer",
		"experience.items.0.company":     "Acme Corp",
		"experience.items.0.period":      "2020-2021",
		"experience.items.0.description": "Worked on X",
	})

	items, err := LoadExperience(c)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/images/attestations/acme-corp/attestation.pdf", items[0].AttestationURL)
	assert.Equal(t, "/images/experiences/acme-corp/attestation.jpg", items[0].AttestationImage)
	assert.Nil(t, items[0].Details)
}

func TestLoadExperienceKeepsCatalogAttestation(t *testing.T) {
	c := catalog.New("en", map[string]string{
		"experience.items.0.title":          "Engineer",
		"experience.items.0.company":        "Acme Corp",
		"experience.items.0.period":         "2020-2021",
		"experience.items.0.description":    "Worked on X",
		"experience.items.0.attestationUrl": "/docs/acme.pdf",
		"experience.items.0.technologies.0": "Go",
		"experience.items.0.technologies.1": "SQL",
	})

	items, err := LoadExperience(c)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/docs/acme.pdf", items[0].AttestationURL)
	assert.Equal(t, []string{"Go", "SQL"}, items[0].Technologies)
}

func TestLoadEducationCapsAtTen(t *testing.T) {
	messages := map[string]string{}
	for _, i := range []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"} {
		messages["education.items."+i+".degree"] = "Degree " + i
		messages["education.items."+i+".school"] = "School"
		messages["education.items."+i+".period"] = "2020"
	}

	items, err := LoadEducation(catalog.New("fr", messages))
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, "Degree 9", items[9].Degree)
}

func TestLoadVolunteerLists(t *testing.T) {
	c := catalog.New("en", map[string]string{
		"volunteer.items.0.role":           "Treasurer",
		"volunteer.items.0.organization":   "Club",
		"volunteer.items.0.period":         "2020",
		"volunteer.items.0.description":    "Budget",
		"volunteer.items.0.achievements.0": "Balanced budget",
		"volunteer.items.0.images.0":       "/a.jpg",
		"volunteer.items.0.images.2":       "/c.jpg",
	})

	items, err := LoadVolunteer(c)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"Balanced budget"}, items[0].Achievements)
	assert.Equal(t, []string{"/a.jpg"}, items[0].Images)
	assert.Empty(t, items[0].Category)
}

func TestSectionByName(t *testing.T) {
	c := catalog.New("en", map[string]string{
		"awards.items.0.title":        "Prize",
		"awards.items.0.organization": "Org",
		"awards.items.0.date":         "2023",
		"testScores.items.0.test":     "TOEIC",
		"testScores.items.0.score":    "915",
		"testScores.items.0.date":     "2022",
	})

	awards, err := Section(c, SectionAwards)
	require.NoError(t, err)
	assert.Equal(t, []Award{{Title: "Prize", Organization: "Org", Date: "2023"}}, awards)

	scores, err := Section(c, SectionTestScores)
	require.NoError(t, err)
	assert.Len(t, scores, 1)

	certs, err := Section(c, SectionCertifications)
	require.NoError(t, err)
	assert.Empty(t, certs)

	_, err = Section(c, "hobbies")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestSectionPropagatesCorruption(t *testing.T) {
	c := catalog.New("en", map[string]string{
		"awards.items.0.title.fr":     "Prix",
		"awards.items.0.organization": "Org",
		"awards.items.0.date":         "2023",
	})

	_, err := LoadAwards(c)
	assert.ErrorIs(t, err, catalog.ErrInsufficientPath)
}
