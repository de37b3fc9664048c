package portfolio

import (
	"github.com/mfall/portfolio/internal/catalog"
)

// NavItem is one entry of the section navigation.
type NavItem struct {
	Key    string
	Anchor string
}

// Nav lists the page sections in display order.
var Nav = []NavItem{
	{Key: "home", Anchor: "hero"},
	{Key: "about", Anchor: "about"},
	{Key: SectionSkills, Anchor: SectionSkills},
	{Key: SectionEducation, Anchor: SectionEducation},
	{Key: SectionExperience, Anchor: SectionExperience},
	{Key: SectionCertifications, Anchor: SectionCertifications},
	{Key: SectionVolunteer, Anchor: SectionVolunteer},
	{Key: SectionAwards, Anchor: SectionAwards},
	{Key: SectionTestScores, Anchor: SectionTestScores},
}

type Hero struct {
	Title        string
	Subtitle     string
	ProfileImage string
}

type About struct {
	Title               string
	Description         string
	DetailedDescription string
	KeyPoints           []string
	ObjectivesTitle     string
	Objectives          string
	ValuesTitle         string
	Values              []string
}

type Contact struct {
	Email       string
	Phone       string
	WhatsApp    string
	WhatsAppURL string
	LinkedIn    string
	Location    string
}

// Page is everything the home page renders for one locale.
type Page struct {
	Locale         string
	Nav            []NavItem
	Hero           Hero
	About          About
	Contact        Contact
	Skills         []Skill
	Education      []Education
	Experience     []Experience
	Certifications []Certification
	Volunteer      []Volunteer
	Awards         []Award
	TestScores     []TestScore
}

// Build resolves every section of the page from c. Nothing is cached; each
// call reads the catalog again.
func Build(c *catalog.Catalog) (*Page, error) {
	page := &Page{
		Locale: c.Locale(),
		Nav:    Nav,
		Hero: Hero{
			Title:        c.Text("hero.title"),
			Subtitle:     c.Text("hero.subtitle"),
			ProfileImage: ProfileImage,
		},
		About: About{
			Title:               c.Text("about.title"),
			Description:         c.Text("about.description"),
			DetailedDescription: optionalText(c, "about.detailedDescription"),
			KeyPoints:           c.List("about.keyPoints"),
			ObjectivesTitle:     textOr(c, "about.objectivesTitle", "Mes Objectifs"),
			Objectives:          optionalText(c, "about.objectives"),
			ValuesTitle:         textOr(c, "about.valuesTitle", "Mes Valeurs"),
			Values:              c.List("about.values"),
		},
		Contact: Contact{
			Email:       optionalText(c, "contact.email"),
			Phone:       optionalText(c, "contact.phone"),
			WhatsApp:    optionalText(c, "contact.whatsapp"),
			WhatsAppURL: WhatsAppURL(optionalText(c, "contact.whatsapp")),
			LinkedIn:    optionalText(c, "contact.linkedin"),
			Location:    optionalText(c, "contact.location"),
		},
	}

	var err error
	if page.Skills, err = LoadSkills(c); err != nil {
		return nil, err
	}
	if page.Education, err = LoadEducation(c); err != nil {
		return nil, err
	}
	if page.Experience, err = LoadExperience(c); err != nil {
		return nil, err
	}
	if page.Certifications, err = LoadCertifications(c); err != nil {
		return nil, err
	}
	if page.Volunteer, err = LoadVolunteer(c); err != nil {
		return nil, err
	}
	if page.Awards, err = LoadAwards(c); err != nil {
		return nil, err
	}
	if page.TestScores, err = LoadTestScores(c); err != nil {
		return nil, err
	}
	return page, nil
}

func optionalText(c *catalog.Catalog, key string) string {
	if text := c.Text(key); text != key {
		return text
	}
	return ""
}

func textOr(c *catalog.Catalog, key, fallback string) string {
	if text := optionalText(c, key); text != "" {
		return text
	}
	return fallback
}
