package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalog-admin-api/internal/domain/catalog"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{" My-Category! ", "my-category"},
		{"Home & Garden", "home-garden"},
		{"--Already--Slugged--", "already-slugged"},
		{"Electronics 2024", "electronics-2024"},
		{"MY CATEGORY", "my-category"},
		{"Café Bar", "caf-bar"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, catalog.Slugify(tc.in), tc.in)
	}
}

func TestSlugify_NombresDistintosMismoSlug(t *testing.T) {
	assert.Equal(t, catalog.Slugify("My Category"), catalog.Slugify("my-category!"))
}
