package model

import (
	"fmt"
	"strings"
)

// Unit is the measure an item's amount is counted in.
type Unit string

// Supported units.
const (
	UnitPieces     Unit = "pieces"
	UnitPackets    Unit = "packets"
	UnitBags       Unit = "bags"
	UnitBottles    Unit = "bottles"
	UnitCans       Unit = "cans"
	UnitCartons    Unit = "cartons"
	UnitJars       Unit = "jars"
	UnitBoxes      Unit = "boxes"
	UnitKilograms  Unit = "kilograms"
	UnitGrams      Unit = "grams"
	UnitLiters     Unit = "liters"
	UnitDeciliters Unit = "deciliters"
)

// Units lists the vocabulary in display order.
var Units = []Unit{
	UnitPieces, UnitPackets, UnitBags, UnitBottles, UnitCans, UnitCartons,
	UnitJars, UnitBoxes, UnitKilograms, UnitGrams, UnitLiters, UnitDeciliters,
}

var unitAliases = map[string]Unit{
	"pcs": UnitPieces,
	"kg":  UnitKilograms,
	"g":   UnitGrams,
	"l":   UnitLiters,
	"dl":  UnitDeciliters,
}

// IsValid reports whether u belongs to the vocabulary.
func (u Unit) IsValid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// ParseUnit accepts unit names and common abbreviations.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := unitAliases[name]; ok {
		return alias, nil
	}
	u := Unit(name)
	if !u.IsValid() {
		return "", fmt.Errorf("unknown unit %q", s)
	}
	return u, nil
}

// UnitNames returns the vocabulary as plain strings.
func UnitNames() []string {
	names := make([]string, len(Units))
	for i, u := range Units {
		names[i] = string(u)
	}
	return names
}
