package types

import (
	"fmt"
	"strings"
	"time"
)

// Property is a listing in the marketplace catalogue.
type Property struct {
	ID          string  `json:"id"`
	Title       string  `json:"title" binding:"required"`
	Price       string  `json:"price"` // Display string, e.g. "$450,000".
	Location    string  `json:"location"`
	Bedrooms    int     `json:"bedrooms" binding:"gte=0"`
	Bathrooms   float64 `json:"bathrooms" binding:"gte=0"`
	Area        string  `json:"area"` // Display string, e.g. "1,200 sq ft".
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Type        string  `json:"type"` // Free-text category (apartment, villa, ...).
	Featured    bool    `json:"featured"`
	CreatedAt   int64   `json:"createdAt"` // Epoch milliseconds.
}

// EntityID returns the property ID.
func (p Property) EntityID() string { return p.ID }

// Validate checks the fields a backend refuses to store.
func (p Property) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidData)
	}
	if p.Bedrooms < 0 {
		return fmt.Errorf("%w: bedrooms must not be negative", ErrInvalidData)
	}
	if p.Bathrooms < 0 {
		return fmt.Errorf("%w: bathrooms must not be negative", ErrInvalidData)
	}
	return nil
}

// Matches reports whether query occurs, ignoring case, in the title, location
// or description. The empty query matches every property.
func (p Property) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Location), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// PropertyPatch names the fields of a partial property update. Nil fields are
// left unchanged.
type PropertyPatch struct {
	Title       *string  `json:"title,omitempty"`
	Price       *string  `json:"price,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *float64 `json:"bathrooms,omitempty"`
	Area        *string  `json:"area,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
}

// Apply returns a copy of p with the named fields replaced.
func (pp PropertyPatch) Apply(p Property) Property {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Location != nil {
		p.Location = *pp.Location
	}
	if pp.Bedrooms != nil {
		p.Bedrooms = *pp.Bedrooms
	}
	if pp.Bathrooms != nil {
		p.Bathrooms = *pp.Bathrooms
	}
	if pp.Area != nil {
		p.Area = *pp.Area
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Type != nil {
		p.Type = *pp.Type
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
	return p
}

// NowMillis returns t as epoch milliseconds, the timestamp unit of every entity.
func NowMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// Ptr returns a pointer to v. It keeps patch literals short.
func Ptr[T any](v T) *T {
	return &v
}
