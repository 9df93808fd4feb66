package seo

import "unicode/utf8"

const (
	MinTitleLength       = 30
	MaxTitleLength       = 60
	MinDescriptionLength = 120
	MaxDescriptionLength = 160
)

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Issue is a single problem found in a page's SEO payload.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Validate reports length problems and more than MaxKeywords keywords as warnings and missing image or structured
// data as critical. Lengths are counted in runes.
func Validate(d PageData) []Issue {
	var issues []Issue
	warn := func(msg string) { issues = append(issues, Issue{SeverityWarning, msg}) }
	crit := func(msg string) { issues = append(issues, Issue{SeverityCritical, msg}) }

	titleLen := utf8.RuneCountInString(d.Title)
	if titleLen < MinTitleLength {
		warn("Título muy corto: mínimo 30 caracteres")
	}
	if titleLen > MaxTitleLength {
		warn("Título muy largo: máximo 60 caracteres")
	}

	descLen := utf8.RuneCountInString(d.Description)
	if descLen < MinDescriptionLength {
		warn("Descripción muy corta: mínimo 120 caracteres")
	}
	if descLen > MaxDescriptionLength {
		warn("Descripción muy larga: máximo 160 caracteres")
	}

	if !ValidateKeywords(d.Keywords) {
		warn("Demasiadas palabras clave: máximo 5")
	}

	if d.OGImage == "" {
		crit("Falta imagen Open Graph")
	}
	if d.StructuredData == nil || len(d.StructuredData.Graph) == 0 {
		crit("Falta structured data JSON-LD")
	}
	return issues
}

// HasCritical reports whether any issue is critical.
func HasCritical(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
