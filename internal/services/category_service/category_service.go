package services

import (
	"strings"
)

// mapping is an ordered (label -> identifier) pair. Order matters: both the
// exact and the substring passes stop at the first hit.
type mapping struct {
	Label string
	ID    string
}

// heuristic is a fallback rule for labels that resemble no table entry.
// Rules are evaluated top to bottom against the normalized label; the first
// rule with any matching term wins.
type heuristic struct {
	Terms []string
	ID    string
}

var categoryTable = []mapping{
	{"SEO", "category-seo"},
	{"Automatización de Procesos", "category-automatizacion"},
	{"Desarrollo Web", "category-desarrollo-web"},
	{"Marketing Digital", "category-marketing-digital"},
	{"Ciberseguridad", "category-ciberseguridad"},
	{"Análisis de Datos", "category-analisis-datos"},
}

var categoryHeuristics = []heuristic{
	{[]string{"automatiz", "proceso"}, "category-automatizacion"},
	{[]string{"desarrollo", "web", "aplicacion"}, "category-desarrollo-web"},
	{[]string{"marketing", "digital"}, "category-marketing-digital"},
	{[]string{"seguridad", "ciberseguridad"}, "category-ciberseguridad"},
	{[]string{"analisis", "datos"}, "category-analisis-datos"},
}

const defaultCategoryID = "category-seo"

type CategoryResolver struct {
	defaultID string
}

// NewCategoryResolver builds a resolver over the fixed mapping table. An
// empty defaultID falls back to the SEO category.
func NewCategoryResolver(defaultID string) *CategoryResolver {
	if defaultID == "" {
		defaultID = defaultCategoryID
	}
	return &CategoryResolver{defaultID: defaultID}
}

// DefaultID is the identifier used when no category is usable at all.
func (r *CategoryResolver) DefaultID() string {
	return r.defaultID
}

// Resolve maps a free-text category label to a content-store category
// identifier. The function is total: any input, string or not, resolves to
// some identifier and no error is ever produced.
func (r *CategoryResolver) Resolve(label any) string {
	name, ok := label.(string)
	if !ok {
		return r.defaultID
	}

	for _, m := range categoryTable {
		if m.Label == name {
			return m.ID
		}
	}

	lower := strings.ToLower(name)
	for _, m := range categoryTable {
		key := strings.ToLower(m.Label)
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return m.ID
		}
	}

	normalized := stripAccents(lower)
	for _, h := range categoryHeuristics {
		for _, term := range h.Terms {
			if strings.Contains(normalized, term) {
				return h.ID
			}
		}
	}

	return r.defaultID
}

var accentReplacer = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ü", "u",
	"ñ", "n",
)

func stripAccents(s string) string {
	return accentReplacer.Replace(s)
}
