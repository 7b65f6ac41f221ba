package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_ExactMatch(t *testing.T) {
	resolver := NewCategoryResolver("")

	tests := []struct {
		label    string
		expected string
	}{
		{"SEO", "category-seo"},
		{"Automatización de Procesos", "category-automatizacion"},
		{"Desarrollo Web", "category-desarrollo-web"},
		{"Marketing Digital", "category-marketing-digital"},
		{"Ciberseguridad", "category-ciberseguridad"},
		{"Análisis de Datos", "category-analisis-datos"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(tt.label))
		})
	}
}

func TestResolve_SubstringMatch(t *testing.T) {
	resolver := NewCategoryResolver("")

	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"label contains table key", "Consultoría SEO técnica", "category-seo"},
		{"table key contains label", "desarrollo web", "category-desarrollo-web"},
		{"case insensitive", "marketing digital", "category-marketing-digital"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(tt.label))
		})
	}
}

func TestResolve_Heuristics(t *testing.T) {
	resolver := NewCategoryResolver("")

	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"automation stem", "Automatizar flujos con Make", "category-automatizacion"},
		{"process term", "Mejora de procesos internos", "category-automatizacion"},
		{"app development", "Aplicaciones a medida", "category-desarrollo-web"},
		{"security", "Seguridad informática para pymes", "category-ciberseguridad"},
		{"data analysis accented", "Análisis avanzado", "category-analisis-datos"},
		{"data term", "Visualización de datos", "category-analisis-datos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(tt.label))
		})
	}
}

func TestResolve_HeuristicPriority(t *testing.T) {
	resolver := NewCategoryResolver("")

	// "procesos" (first rule) beats "datos" (last rule) when both appear.
	assert.Equal(t, "category-automatizacion", resolver.Resolve("Procesos de datos"))
}

func TestResolve_NonStringInput(t *testing.T) {
	resolver := NewCategoryResolver("")

	for _, input := range []any{nil, 42, 3.14, true, []string{"SEO"}, map[string]any{"label": "SEO"}} {
		assert.Equal(t, "category-seo", resolver.Resolve(input))
	}
}

func TestResolve_NoMatchReturnsDefault(t *testing.T) {
	resolver := NewCategoryResolver("")

	assert.Equal(t, "category-seo", resolver.Resolve("cocina vegana"))
	assert.Equal(t, "category-seo", resolver.Resolve(""))
}

func TestResolve_ConfiguredDefault(t *testing.T) {
	resolver := NewCategoryResolver("category-custom")

	assert.Equal(t, "category-custom", resolver.Resolve("cocina vegana"))
	assert.Equal(t, "category-custom", resolver.Resolve(nil))
	assert.Equal(t, "category-custom", resolver.DefaultID())

	// Table entries still win over the configured default.
	assert.Equal(t, "category-seo", resolver.Resolve("SEO"))
}
