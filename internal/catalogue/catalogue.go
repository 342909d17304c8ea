// Package catalogue holds the demo data every backend can seed: six
// properties, a buyer and a seller, a two-line conversation and two
// collections. All timestamps are relative to the time passed in.
package catalogue

import (
	"time"

	"github.com/mesh-intelligence/propai/pkg/types"
)

const day = 24 * time.Hour

// Catalogue is one complete seed set.
type Catalogue struct {
	Properties  []types.Property
	Users       []types.User
	Messages    []types.Message
	Collections []types.Collection
}

// Demo returns the seed set with timestamps computed from now.
func Demo(now time.Time) Catalogue {
	ago := func(d time.Duration) int64 { return types.NowMillis(now.Add(-d)) }

	return Catalogue{
		Properties: []types.Property{
			{
				ID:          "1",
				Title:       "Modern Downtown Apartment",
				Price:       "$450,000",
				Location:    "Downtown, New York",
				Bedrooms:    2,
				Bathrooms:   2,
				Area:        "1,200 sq ft",
				Image:       "https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=400&h=300&fit=crop",
				Description: "Beautiful modern apartment in the heart of downtown with stunning city views.",
				Type:        "apartment",
				Featured:    true,
				CreatedAt:   ago(1 * day),
			},
			{
				ID:          "2",
				Title:       "Luxury Family Home",
				Price:       "$750,000",
				Location:    "Suburbs, California",
				Bedrooms:    4,
				Bathrooms:   3,
				Area:        "2,500 sq ft",
				Image:       "https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=400&h=300&fit=crop",
				Description: "Spacious family home with large backyard and modern amenities.",
				Type:        "house",
				CreatedAt:   ago(2 * day),
			},
			{
				ID:          "3",
				Title:       "Cozy Studio Apartment",
				Price:       "$280,000",
				Location:    "Brooklyn, New York",
				Bedrooms:    1,
				Bathrooms:   1,
				Area:        "600 sq ft",
				Image:       "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400&h=300&fit=crop",
				Description: "Perfect starter home in trendy Brooklyn neighborhood.",
				Type:        "apartment",
				CreatedAt:   ago(3 * day),
			},
			{
				ID:          "4",
				Title:       "Executive Penthouse",
				Price:       "$1,200,000",
				Location:    "Manhattan, New York",
				Bedrooms:    3,
				Bathrooms:   3,
				Area:        "2,000 sq ft",
				Image:       "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=400&h=300&fit=crop",
				Description: "Luxurious penthouse with panoramic city views and premium finishes.",
				Type:        "penthouse",
				Featured:    true,
				CreatedAt:   ago(4 * day),
			},
			{
				ID:          "5",
				Title:       "Beachfront Villa",
				Price:       "$950,000",
				Location:    "Miami, Florida",
				Bedrooms:    3,
				Bathrooms:   2,
				Area:        "1,800 sq ft",
				Image:       "https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=400&h=300&fit=crop",
				Description: "Stunning beachfront property with direct ocean access.",
				Type:        "villa",
				Featured:    true,
				CreatedAt:   ago(5 * day),
			},
			{
				ID:          "6",
				Title:       "Mountain Cabin",
				Price:       "$320,000",
				Location:    "Aspen, Colorado",
				Bedrooms:    2,
				Bathrooms:   1,
				Area:        "1,000 sq ft",
				Image:       "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=400&h=300&fit=crop",
				Description: "Charming cabin perfect for weekend getaways and nature lovers.",
				Type:        "cabin",
				CreatedAt:   ago(6 * day),
			},
		},
		Users: []types.User{
			{
				ID:        "user-1",
				Email:     "john@example.com",
				Name:      "John Doe",
				Role:      types.RoleBuyer,
				Avatar:    types.Ptr("https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop&crop=face"),
				CreatedAt: ago(7 * day),
			},
			{
				ID:        "user-2",
				Email:     "jane@example.com",
				Name:      "Jane Smith",
				Role:      types.RoleSeller,
				Avatar:    types.Ptr("https://images.unsplash.com/photo-1494790108755-2616b612b786?w=100&h=100&fit=crop&crop=face"),
				CreatedAt: ago(14 * day),
			},
		},
		Messages: []types.Message{
			{
				ID:        "msg-1",
				UserID:    "user-1",
				Content:   "Hello! I'm looking for a property in downtown area.",
				Timestamp: ago(time.Hour),
			},
			{
				ID:        "msg-2",
				UserID:    "user-1",
				Content:   "I can help you find the perfect property! What's your budget range?",
				IsAI:      true,
				Timestamp: ago(time.Hour - 100*time.Second),
			},
		},
		Collections: []types.Collection{
			{
				ID:          "col-1",
				UserID:      "user-1",
				Name:        "Favorites",
				PropertyIDs: []string{"1", "4"},
				CreatedAt:   ago(1 * day),
			},
			{
				ID:          "col-2",
				UserID:      "user-1",
				Name:        "Downtown Properties",
				PropertyIDs: []string{"1", "3"},
				CreatedAt:   ago(2 * day),
			},
		},
	}
}
