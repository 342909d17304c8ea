package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProperty() Property {
	return Property{
		ID:          "p-1",
		Title:       "Cozy Studio Apartment",
		Price:       "$280,000",
		Location:    "Brooklyn, New York",
		Bedrooms:    1,
		Bathrooms:   1,
		Area:        "600 sq ft",
		Image:       "https://example.com/studio.jpg",
		Description: "Perfect starter home in a trendy neighborhood.",
		Type:        "apartment",
		CreatedAt:   1700000000000,
	}
}

func TestPropertyMatches(t *testing.T) {
	p := sampleProperty()

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"title match", "studio", true},
		{"location match ignores case", "BROOKLYN", true},
		{"description match", "starter home", true},
		{"no match", "penthouse", false},
		{"price is not searched", "280", false},
		{"empty query matches", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Matches(tt.query))
		})
	}
}

func TestPropertyValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Property)
		wantErr bool
	}{
		{"valid", func(p *Property) {}, false},
		{"blank title", func(p *Property) { p.Title = "  " }, true},
		{"negative bedrooms", func(p *Property) { p.Bedrooms = -1 }, true},
		{"negative bathrooms", func(p *Property) { p.Bathrooms = -0.5 }, true},
		{"zero rooms allowed", func(p *Property) { p.Bedrooms, p.Bathrooms = 0, 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProperty()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidData)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPropertyPatchApply(t *testing.T) {
	p := sampleProperty()

	got := PropertyPatch{Featured: Ptr(true), Bathrooms: Ptr(1.5)}.Apply(p)

	assert.True(t, got.Featured)
	assert.Equal(t, 1.5, got.Bathrooms)

	// Every field the patch does not name is preserved.
	got.Featured = p.Featured
	got.Bathrooms = p.Bathrooms
	assert.Equal(t, p, got)
}

func TestPropertyPatchApplyEmpty(t *testing.T) {
	p := sampleProperty()
	assert.Equal(t, p, PropertyPatch{}.Apply(p))
}
