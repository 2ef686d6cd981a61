package imgload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitial(t *testing.T) {
	assert.Equal(t, "A", Initial("acme"))
	assert.Equal(t, "É", Initial(" école"))
	assert.Equal(t, "", Initial("  "))
}

func TestStrategy_Effective(t *testing.T) {
	assert.Equal(t, StrategyInitial, StrategyInitial.Effective("Acme"))
	assert.Equal(t, StrategyIcon, StrategyInitial.Effective(""), "no label degrades to the icon")
	assert.Equal(t, StrategyPlaceholder, StrategyPlaceholder.Effective(""))
	assert.Equal(t, StrategyIcon, Strategy("").Effective("Acme"))
}

func TestRenderFallback(t *testing.T) {
	ct, body := RenderFallback(StrategyInitial, "globex", "Globex logo")
	assert.Equal(t, "image/svg+xml", ct)
	assert.Contains(t, string(body), ">G</text>")
	assert.Contains(t, string(body), `aria-label="Globex logo"`)

	_, body = RenderFallback(StrategyInitial, "", "x")
	assert.NotContains(t, string(body), "<text")
	assert.Contains(t, string(body), "M6 22V4", "icon glyph")

	_, body = RenderFallback(StrategyPlaceholder, "", "x")
	assert.Contains(t, string(body), "#f3f4f6")

	_, body = RenderFallback(StrategyInitial, "<script>", `"><x`)
	assert.NotContains(t, string(body), "<script>")
	assert.NotContains(t, string(body), `"><x`)
}

func TestRenderLoading(t *testing.T) {
	ct, body := RenderLoading()
	assert.Equal(t, "image/svg+xml", ct)
	assert.Contains(t, string(body), "<animate")
}
