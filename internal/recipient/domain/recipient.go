package domain

import (
	"fmt"
	"strings"
)

// Category is a headline topic a user can follow.
type Category string

const (
	CategoryTechnology    Category = "technology"
	CategoryBusiness      Category = "business"
	CategorySports        Category = "sports"
	CategoryGeneral       Category = "general"
	CategoryWorld         Category = "world"
	CategoryNation        Category = "nation"
	CategoryEntertainment Category = "entertainment"
	CategoryScience       Category = "science"
	CategoryHealth        Category = "health"
)

// DefaultCategory is used by the dashboard when nothing is chosen yet.
const DefaultCategory = CategoryTechnology

var categories = []Category{
	CategoryTechnology, CategoryBusiness, CategorySports, CategoryGeneral,
	CategoryWorld, CategoryNation, CategoryEntertainment, CategoryScience, CategoryHealth,
}

// Categories lists every supported topic.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported category %q", s)
}

type Preference struct {
	Category string `json:"category" firestore:"category"`
	Keyword  string `json:"keyword,omitempty" firestore:"keyword,omitempty"`
}

// Profile is the identity data copied from the sign-in provider.
type Profile struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Provider  string `json:"provider"`
}

// Recipient is one user document in the directory.
type Recipient struct {
	ID          string      `json:"id"`
	Profile     Profile     `json:"profile"`
	Preference  *Preference `json:"preference,omitempty"`
	DeviceToken string      `json:"-"`
}

// HasPreference is true when a non-blank category is set.
func (r *Recipient) HasPreference() bool {
	return r.Preference != nil && strings.TrimSpace(r.Preference.Category) != ""
}

func (r *Recipient) HasDeviceToken() bool {
	return strings.TrimSpace(r.DeviceToken) != ""
}

// Eligible recipients get a breaking news push.
func (r *Recipient) Eligible() bool {
	return r.HasPreference() && r.HasDeviceToken()
}
