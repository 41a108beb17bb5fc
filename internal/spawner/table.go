// Package spawner turns sets of candidate cells into weighted entity
// placement requests. It never instantiates entities itself.
package spawner

import (
	"github.com/lawnchairsociety/towergen/internal/dice"
)

// Entity names produced by the spawn tables and prefab glyphs
const (
	Goblin          = "Goblin"
	Orc             = "Orc"
	HealthPotion    = "Health Potion"
	FireballScroll  = "Fireball Scroll"
	ConfusionScroll = "Confusion Scroll"
	MagicMissile    = "Magic Missile Scroll"
	MagicMapping    = "Magic Mapping Scroll"
	Dagger          = "Dagger"
	Shield          = "Shield"
	Longsword       = "Longsword"
	TowerShield     = "Tower Shield"
	Rations         = "Rations"
	BearTrap        = "Bear Trap"
	Door            = "Door"
)

// RandomTable is a weighted list of entity names
type RandomTable struct {
	entries []dice.Option[string]
}

// NewRandomTable creates an empty table
func NewRandomTable() *RandomTable {
	return &RandomTable{}
}

// Add appends an entry. Entries with a non-positive weight are dropped.
func (t *RandomTable) Add(name string, weight int) *RandomTable {
	if weight > 0 {
		t.entries = append(t.entries, dice.Option[string]{Value: name, Weight: weight})
	}
	return t
}

// Len returns the number of weighted entries
func (t *RandomTable) Len() int {
	return len(t.entries)
}

// TotalWeight returns the sum of all weights
func (t *RandomTable) TotalWeight() int {
	return dice.TotalWeight(t.entries)
}

// Roll picks one entry. Returns "" for an empty table.
func (t *RandomTable) Roll(rng dice.Roller) string {
	name, ok := dice.Pick(rng, t.entries)
	if !ok {
		return ""
	}
	return name
}

// RoomTable returns the spawn table for a depth. Deeper levels favour orcs,
// attack scrolls and heavier equipment.
func RoomTable(depth int) *RandomTable {
	return NewRandomTable().
		Add(Goblin, 10).
		Add(Orc, 1+depth).
		Add(HealthPotion, 7).
		Add(FireballScroll, 2+depth).
		Add(ConfusionScroll, 2+depth).
		Add(MagicMissile, 4).
		Add(Dagger, 3).
		Add(Shield, 3).
		Add(Longsword, depth-1).
		Add(TowerShield, depth-1).
		Add(Rations, 10).
		Add(MagicMapping, 2).
		Add(BearTrap, 5)
}
