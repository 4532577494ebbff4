package store

var mockEntries = []SeedEntry{
	{Category: CategoryWaste, Description: "Sorted the week's recycling", ImpactScore: 4},
	{Category: CategoryFood, Description: "Cooked a plant-based dinner", ImpactScore: 6},
	{Category: CategoryEnergy, Description: "Air-dried laundry instead of using the dryer", ImpactScore: 5},
	{Category: CategoryTransport, Description: "Cycled to work", ImpactScore: 8},
}

// MockEntries returns the demo log used when seeding is enabled.
func MockEntries() []SeedEntry {
	out := make([]SeedEntry, len(mockEntries))
	copy(out, mockEntries)
	return out
}
