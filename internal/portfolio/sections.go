package portfolio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mfall/portfolio/internal/itemlist"
)

// ErrUnknownSection is returned for a section name with no schema.
var ErrUnknownSection = errors.New("unknown section")

// Section namespaces in the message catalog.
const (
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionAwards         = "awards"
	SectionTestScores     = "testScores"
	SectionVolunteer      = "volunteer"
)

const (
	minSkillLevel     = 1
	maxSkillLevel     = 5
	defaultSkillLevel = 5
)

var (
	educationSchema = itemlist.Schema{
		Required: []string{"degree", "school", "period"},
		Optional: []string{"grade", "activities", "note"},
		MaxItems: 10,
	}
	experienceSchema = itemlist.Schema{
		Required: []string{"title", "company", "period", "description"},
		Optional: []string{"location", "detailedDescription", "attestationUrl", "attestationImage"},
		Lists:    []string{"details", "images", "videos", "technologies"},
	}
	skillSchema = itemlist.Schema{
		Required: []string{"name", "level"},
	}
	certificationSchema = itemlist.Schema{
		Required: []string{"name", "issuer", "date"},
		Optional: []string{"credentialId", "skills", "documentUrl", "imageUrl"},
	}
	awardSchema = itemlist.Schema{
		Required: []string{"title", "organization", "date"},
		Optional: []string{"description"},
	}
	testScoreSchema = itemlist.Schema{
		Required: []string{"test", "score", "date"},
		Optional: []string{"details"},
	}
	volunteerSchema = itemlist.Schema{
		Required: []string{"role", "organization", "period", "description"},
		Optional: []string{"category", "detailedDescription"},
		Lists:    []string{"images", "videos", "achievements"},
	}
)

type Education struct {
	Degree     string `json:"degree"`
	School     string `json:"school"`
	Period     string `json:"period"`
	Grade      string `json:"grade,omitempty"`
	Activities string `json:"activities,omitempty"`
	Note       string `json:"note,omitempty"`
}

type Experience struct {
	Title               string   `json:"title"`
	Company             string   `json:"company"`
	Period              string   `json:"period"`
	Description         string   `json:"description"`
	Location            string   `json:"location,omitempty"`
	DetailedDescription string   `json:"detailedDescription,omitempty"`
	AttestationURL      string   `json:"attestationUrl"`
	AttestationImage    string   `json:"attestationImage"`
	Details             []string `json:"details,omitempty"`
	Images              []string `json:"images,omitempty"`
	Videos              []string `json:"videos,omitempty"`
	Technologies        []string `json:"technologies,omitempty"`
}

type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Icon  string `json:"icon"`
}

// Percent is the level as a share of the maximum, for progress rings.
func (s Skill) Percent() int {
	return s.Level * 100 / maxSkillLevel
}

type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	CredentialID string `json:"credentialId,omitempty"`
	Skills       string `json:"skills,omitempty"`
	DocumentURL  string `json:"documentUrl,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

type Award struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Date         string `json:"date"`
	Description  string `json:"description,omitempty"`
}

type TestScore struct {
	Test    string `json:"test"`
	Score   string `json:"score"`
	Date    string `json:"date"`
	Details string `json:"details,omitempty"`
}

type Volunteer struct {
	Role                string   `json:"role"`
	Organization        string   `json:"organization"`
	Period              string   `json:"period"`
	Description         string   `json:"description"`
	Category            string   `json:"category,omitempty"`
	DetailedDescription string   `json:"detailedDescription,omitempty"`
	Images              []string `json:"images,omitempty"`
	Videos              []string `json:"videos,omitempty"`
	Achievements        []string `json:"achievements,omitempty"`
}

func LoadEducation(src itemlist.Lookuper) ([]Education, error) {
	records, err := itemlist.Resolve(src, SectionEducation, educationSchema)
	if err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	out := make([]Education, 0, len(records))
	for _, r := range records {
		out = append(out, Education{
			Degree:     r.Text("degree"),
			School:     r.Text("school"),
			Period:     r.Text("period"),
			Grade:      r.Text("grade"),
			Activities: r.Text("activities"),
			Note:       r.Text("note"),
		})
	}
	return out, nil
}

// LoadExperience resolves work experience. Attestation links absent from the
// catalog are derived from the company name.
func LoadExperience(src itemlist.Lookuper) ([]Experience, error) {
	records, err := itemlist.Resolve(src, SectionExperience, experienceSchema)
	if err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}
	out := make([]Experience, 0, len(records))
	for _, r := range records {
		e := Experience{
			Title:               r.Text("title"),
			Company:             r.Text("company"),
			Period:              r.Text("period"),
			Description:         r.Text("description"),
			Location:            r.Text("location"),
			DetailedDescription: r.Text("detailedDescription"),
			AttestationURL:      r.Text("attestationUrl"),
			AttestationImage:    r.Text("attestationImage"),
			Details:             r.List("details"),
			Images:              r.List("images"),
			Videos:              r.List("videos"),
			Technologies:        r.List("technologies"),
		}
		if e.AttestationURL == "" {
			e.AttestationURL = AttestationURL(e.Company)
		}
		if e.AttestationImage == "" {
			e.AttestationImage = AttestationImage(e.Company)
		}
		out = append(out, e)
	}
	return out, nil
}

func LoadSkills(src itemlist.Lookuper) ([]Skill, error) {
	records, err := itemlist.Resolve(src, SectionSkills, skillSchema)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	out := make([]Skill, 0, len(records))
	for _, r := range records {
		name := r.Text("name")
		out = append(out, Skill{
			Name:  name,
			Level: ParseLevel(r.Text("level")),
			Icon:  SkillIcon(name),
		})
	}
	return out, nil
}

// ParseLevel reads a skill level. Unparseable input counts as the maximum
// level; the result is always within [1, 5].
func ParseLevel(raw string) int {
	level, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		level = defaultSkillLevel
	}
	return min(max(level, minSkillLevel), maxSkillLevel)
}

func LoadCertifications(src itemlist.Lookuper) ([]Certification, error) {
	records, err := itemlist.Resolve(src, SectionCertifications, certificationSchema)
	if err != nil {
		return nil, fmt.Errorf("load certifications: %w", err)
	}
	out := make([]Certification, 0, len(records))
	for _, r := range records {
		out = append(out, Certification{
			Name:         r.Text("name"),
			Issuer:       r.Text("issuer"),
			Date:         r.Text("date"),
			CredentialID: r.Text("credentialId"),
			Skills:       r.Text("skills"),
			DocumentURL:  r.Text("documentUrl"),
			ImageURL:     r.Text("imageUrl"),
		})
	}
	return out, nil
}

func LoadAwards(src itemlist.Lookuper) ([]Award, error) {
	records, err := itemlist.Resolve(src, SectionAwards, awardSchema)
	if err != nil {
		return nil, fmt.Errorf("load awards: %w", err)
	}
	out := make([]Award, 0, len(records))
	for _, r := range records {
		out = append(out, Award{
			Title:        r.Text("title"),
			Organization: r.Text("organization"),
			Date:         r.Text("date"),
			Description:  r.Text("description"),
		})
	}
	return out, nil
}

func LoadTestScores(src itemlist.Lookuper) ([]TestScore, error) {
	records, err := itemlist.Resolve(src, SectionTestScores, testScoreSchema)
	if err != nil {
		return nil, fmt.Errorf("load test scores: %w", err)
	}
	out := make([]TestScore, 0, len(records))
	for _, r := range records {
		out = append(out, TestScore{
			Test:    r.Text("test"),
			Score:   r.Text("score"),
			Date:    r.Text("date"),
			Details: r.Text("details"),
		})
	}
	return out, nil
}

func LoadVolunteer(src itemlist.Lookuper) ([]Volunteer, error) {
	records, err := itemlist.Resolve(src, SectionVolunteer, volunteerSchema)
	if err != nil {
		return nil, fmt.Errorf("load volunteer: %w", err)
	}
	out := make([]Volunteer, 0, len(records))
	for _, r := range records {
		out = append(out, Volunteer{
			Role:                r.Text("role"),
			Organization:        r.Text("organization"),
			Period:              r.Text("period"),
			Description:         r.Text("description"),
			Category:            r.Text("category"),
			DetailedDescription: r.Text("detailedDescription"),
			Images:              r.List("images"),
			Videos:              r.List("videos"),
			Achievements:        r.List("achievements"),
		})
	}
	return out, nil
}

// Section resolves one section by its catalog namespace.
func Section(src itemlist.Lookuper, name string) (any, error) {
	switch name {
	case SectionEducation:
		return LoadEducation(src)
	case SectionExperience:
		return LoadExperience(src)
	case SectionSkills:
		return LoadSkills(src)
	case SectionCertifications:
		return LoadCertifications(src)
	case SectionAwards:
		return LoadAwards(src)
	case SectionTestScores:
		return LoadTestScores(src)
	case SectionVolunteer:
		return LoadVolunteer(src)
	default:
		return nil, fmt.Errorf("section %q: %w", name, ErrUnknownSection)
	}
}
