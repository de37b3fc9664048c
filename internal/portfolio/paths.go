package portfolio

import (
	"regexp"
	"strings"
)

// ProfileImage is the hero portrait.
const ProfileImage = "/images/profile/profile.jpg"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
	nonDigits     = regexp.MustCompile(`[^0-9]`)
)

var professionalSkillIcons = map[string]string{
	"Comptabilité":           "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/xero.svg",
	"Accounting":             "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/xero.svg",
	"Analyse financière":     "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/chartdotjs.svg",
	"Financial Analysis":     "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/chartdotjs.svg",
	"Contrôles internes":     "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/shieldcheckmark.svg",
	"Internal Controls":      "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/shieldcheckmark.svg",
	"Microsoft Excel":        "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/microsoftexcel.svg",
	"Microsoft Power BI":     "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/powerbi.svg",
	"Intégration de données": "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/microsoftazure.svg",
	"Data Integration":       "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/microsoftazure.svg",
	"Business Financing":     "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/visa.svg",
	"Finance":                "https://cdn.jsdelivr.net/npm/simple-icons@v9/icons/visa.svg",
}

// Slug lowercases s, turns whitespace runs into hyphens and drops anything
// outside [a-z0-9-].
func Slug(s string) string {
	s = whitespaceRun.ReplaceAllString(strings.ToLower(s), "-")
	return nonSlugChars.ReplaceAllString(s, "")
}

// AttestationURL is the default attestation document for a company.
func AttestationURL(company string) string {
	return "/images/attestations/" + Slug(company) + "/attestation.pdf"
}

// AttestationImage is the default attestation scan for a company.
func AttestationImage(company string) string {
	return "/images/experiences/" + Slug(company) + "/attestation.jpg"
}

// SkillIcon returns a hosted icon for well-known skills and a local SVG path
// otherwise.
func SkillIcon(name string) string {
	if icon, ok := professionalSkillIcons[name]; ok {
		return icon
	}
	// local file names keep accents; only whitespace is hyphenated
	return "/images/skills/" + whitespaceRun.ReplaceAllString(strings.ToLower(name), "-") + ".svg"
}

// WhatsAppURL builds a click-to-chat link from a phone number in any format.
func WhatsAppURL(number string) string {
	digits := nonDigits.ReplaceAllString(number, "")
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
