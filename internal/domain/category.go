package domain

// Category identifies one of the four monitoring API endpoints queried per node.
type Category string

// Fetch categories in their fixed aggregation order.
const (
	CategoryStatus     Category = "status"
	CategoryRewards    Category = "rewards"
	CategoryPayouts    Category = "payouts"
	CategoryClaimCodes Category = "claimCodes"
)

// NumCategories is the number of endpoint categories fetched per load cycle.
const NumCategories = 4

// Categories returns all fetch categories in aggregation order.
func Categories() [NumCategories]Category {
	return [NumCategories]Category{CategoryStatus, CategoryRewards, CategoryPayouts, CategoryClaimCodes}
}

// Index returns the category's position in the fixed aggregation order,
// or -1 for an unknown category.
func (c Category) Index() int {
	switch c {
	case CategoryStatus:
		return 0
	case CategoryRewards:
		return 1
	case CategoryPayouts:
		return 2
	case CategoryClaimCodes:
		return 3
	default:
		return -1
	}
}

// Valid reports whether c is one of the four fetch categories.
func (c Category) Valid() bool {
	return c.Index() >= 0
}
