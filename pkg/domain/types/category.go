package types

// Category is the coarse risk bucket derived from a score
type Category string

const (
	CategoryLow    Category = "LOW"
	CategoryMedium Category = "MEDIUM"
	CategoryHigh   Category = "HIGH"
)

// AllCategories returns all categories ordered from least to most severe
func AllCategories() []Category {
	return []Category{
		CategoryLow,
		CategoryMedium,
		CategoryHigh,
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}
