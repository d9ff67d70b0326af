package utils_test

import (
	"testing"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := map[string]string{
		"Commode Louis XV":                       "Commode Louis XV",
		"  <b>Louis</b> XV & co  ":               "Louis XV & co",
		`<script>alert("x")</script>Bergère`:     "Bergère",
		`<a href="javascript:alert(1)">link</a>`: "link",
		"":                                       "",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, utils.SanitizeText(input), "input %q", input)
	}
}

func TestSanitizeRichText(t *testing.T) {
	out := utils.SanitizeRichText(`<p>Walnut <em>veneer</em></p><script>alert(1)</script><img src=x onerror=alert(1)>`)

	assert.Contains(t, out, "<p>Walnut <em>veneer</em></p>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onerror")
}

func TestSanitizePtr(t *testing.T) {
	assert.Nil(t, utils.SanitizeTextPtr(nil))
	assert.Nil(t, utils.SanitizeRichTextPtr(nil))

	in := "<i>Oak</i>"
	assert.Equal(t, "Oak", *utils.SanitizeTextPtr(&in))
	assert.Equal(t, "<i>Oak</i>", *utils.SanitizeRichTextPtr(&in))
}
