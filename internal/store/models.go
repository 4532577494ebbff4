package store

import "time"

// Category is one of the fixed activity categories.
type Category string

const (
	CategoryTransport Category = "transport"
	CategoryFood      Category = "food"
	CategoryEnergy    Category = "energy"
	CategoryWaste     Category = "waste"
	CategoryCommunity Category = "community"
)

var categories = []Category{
	CategoryTransport,
	CategoryFood,
	CategoryEnergy,
	CategoryWaste,
	CategoryCommunity,
}

var categoryLabels = map[Category]string{
	CategoryTransport: "Transport",
	CategoryFood:      "Food",
	CategoryEnergy:    "Energy",
	CategoryWaste:     "Waste",
	CategoryCommunity: "Community",
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Label returns the display label, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is part of the fixed enumeration.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

const (
	MinImpact = 1
	MaxImpact = 10
)

type ActivityLogEntry struct {
	ID          string
	Category    Category
	Description string
	ImpactScore int
	Date        time.Time
}

// UserStats is derived from the entries and never set directly.
type UserStats struct {
	TotalLogs  int
	TotalScore int
	Streak     int
}

// CategoryTotal aggregates entries of one category.
type CategoryTotal struct {
	Category Category
	Count    int
	Score    int
}

// SeedEntry is a mock entry loaded at session start.
type SeedEntry struct {
	Category    Category
	Description string
	ImpactScore int
}
