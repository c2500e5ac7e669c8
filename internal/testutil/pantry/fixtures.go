package pantry

// Fixture represents a predefined set of pantry items.
type Fixture interface {
	Name() string
	Items() []ItemName
}

type fixture struct {
	name  string
	items []ItemName
}

func (f *fixture) Name() string      { return f.name }
func (f *fixture) Items() []ItemName { return f.items }

// Predefined fixtures for common test scenarios.
var (
	// FixtureStaples is a small weekly household.
	FixtureStaples = &fixture{
		name:  "Staples",
		items: []ItemName{ItemMilk, ItemBread, ItemEggs},
	}

	// FixtureFullPantry covers every time frame plus a one-time item.
	FixtureFullPantry = &fixture{
		name: "Full pantry",
		items: []ItemName{
			ItemApples, ItemBread, ItemCandles, ItemCoffee,
			ItemEggs, ItemMilk, ItemRice,
		},
	}
)
