package enums

import "fmt"

// FactoryCategory classifies the factory before entering the production floor.
type FactoryCategory string

const (
	FactoryCategoryTreif  FactoryCategory = "treif"
	FactoryCategoryIssur  FactoryCategory = "issur"
	FactoryCategoryG6     FactoryCategory = "g6"
	FactoryCategoryKosher FactoryCategory = "kosher"
)

var validFactoryCategories = []FactoryCategory{
	FactoryCategoryTreif,
	FactoryCategoryIssur,
	FactoryCategoryG6,
	FactoryCategoryKosher,
}

// String returns the literal string for the category.
func (c FactoryCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is known.
func (c FactoryCategory) IsValid() bool {
	for _, candidate := range validFactoryCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseFactoryCategory converts raw input into a FactoryCategory.
func ParseFactoryCategory(value string) (FactoryCategory, error) {
	for _, candidate := range validFactoryCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid factory category %q", value)
}
