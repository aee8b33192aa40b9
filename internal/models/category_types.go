package models

// Category is the action category of a plan.
type Category string

const (
	CategoryMove        Category = "move"
	CategorySightseeing Category = "sightseeing"
	CategoryMeal        Category = "meal"
	CategoryStay        Category = "stay"
)

// Categories lists every action category in display order.
func Categories() []Category {
	return []Category{CategoryMove, CategorySightseeing, CategoryMeal, CategoryStay}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMove, CategorySightseeing, CategoryMeal, CategoryStay:
		return true
	}
	return false
}
