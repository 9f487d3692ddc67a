package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", FirstNonEmpty("a", "b"))
	assert.Equal(t, "b", FirstNonEmpty("", "b"))
	assert.Equal(t, "", FirstNonEmpty("", ""))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":    "acme_corp",
		"  Home Depot": "home_depot",
		"walmart":      "walmart",
		"A  B\tC":      "a_b_c",
		"":             "",
	}
	for in, exp := range cases {
		assert.Equal(t, exp, Slugify(in))
	}
}
