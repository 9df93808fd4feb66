package seo

import (
	"strings"

	"github.com/pinturas-diamante/catalog-site/internal/models"
)

// MaxKeywords is the most keywords a page should declare.
const MaxKeywords = 5

// ValidateKeywords reports whether a comma separated keyword list stays within
// MaxKeywords. Blank entries are not counted.
func ValidateKeywords(keywords string) bool {
	n := 0
	for _, k := range strings.Split(keywords, ",") {
		if strings.TrimSpace(k) != "" {
			n++
		}
	}
	return n <= MaxKeywords
}

// TruncateDescription cuts text to at most length runes and appends "...".
func TruncateDescription(text string, length int) string {
	if length <= 0 {
		length = 160
	}
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return strings.TrimSpace(string(runes[:length])) + "..."
}

// ProductKeywords is the keywords meta content of a product page.
func ProductKeywords(p models.Product, locality, business string) string {
	return strings.Join([]string{
		Value(p.Tag, "pintura"),
		p.Name,
		strings.ToLower(locality),
		strings.ToLower(business),
	}, ", ")
}
