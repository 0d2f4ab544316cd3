package engine

import "math"

// Modifier is a daily global multiplier on reward streams ("chaos").
// One is selected per calendar day.
type Modifier struct {
	Name      string
	Desc      string
	XPMult    float64
	GoldMult  float64
	PriceMult float64
	Icon      string
	// HealthCost is deducted per task completion while active.
	HealthCost int
	// TaxesGold removes a share of existing positive gold on roll.
	TaxesGold bool
}

var defaultModifier = Modifier{
	Name:      "Steady Day",
	Desc:      "No surprises today.",
	XPMult:    1,
	GoldMult:  1,
	PriceMult: 1,
	Icon:      "⚖️",
}

var modifierTable = []Modifier{
	{Name: "Muse's Favor", Desc: "Double experience from every quest.", XPMult: 2, GoldMult: 1, PriceMult: 1, Icon: "🎭"},
	{Name: "Gold Rush", Desc: "Double gold from every quest.", XPMult: 1, GoldMult: 2, PriceMult: 1, Icon: "🪙"},
	{Name: "Inflation", Desc: "Everything costs double today.", XPMult: 1, GoldMult: 1, PriceMult: 2, Icon: "📈"},
	{Name: "Tax Day", Desc: "The collector takes a cut of your hoard.", XPMult: 1, GoldMult: 0.8, PriceMult: 1, Icon: "🧾", TaxesGold: true},
	{Name: "Iron Price", Desc: "Half again the experience, paid in blood.", XPMult: 1.5, GoldMult: 1, PriceMult: 1, Icon: "🩸", HealthCost: 2},
}

// ModifierByName resolves a stored modifier name; unknown names fall
// back to the default so old documents stay loadable.
func ModifierByName(name string) Modifier {
	if name == defaultModifier.Name {
		return defaultModifier
	}
	for _, m := range modifierTable {
		if m.Name == name {
			return m
		}
	}
	return defaultModifier
}

// rollModifier draws the day's modifier: the default with a fixed
// probability, otherwise uniformly from the table.
func rollModifier(rng RNG) Modifier {
	if rng.Float64() < defaultModifierChance {
		return defaultModifier
	}
	return modifierTable[rng.IntN(len(modifierTable))]
}

// applyTax removes the tax share from positive gold, rounding the tax
// up so a taxed day is never free.
func applyTax(gold int) int {
	if gold <= 0 {
		return gold
	}
	tax := int(math.Ceil(float64(gold) * modifierTaxRate))
	return gold - tax
}
