package core

import "strings"

// PowerUp is a consumable board effect.
type PowerUp uint8

const (
	PowerBomb PowerUp = iota
	PowerShuffle
	PowerExtraMoves
)

// String returns the string representation of a power-up.
func (p PowerUp) String() string {
	switch p {
	case PowerBomb:
		return "bomb"
	case PowerShuffle:
		return "shuffle"
	case PowerExtraMoves:
		return "extra_moves"
	default:
		return "unknown"
	}
}

// ParsePowerUp converts a name to a PowerUp.
func ParsePowerUp(s string) (PowerUp, bool) {
	switch strings.ToLower(s) {
	case "bomb":
		return PowerBomb, true
	case "shuffle":
		return PowerShuffle, true
	case "extra_moves", "extramoves", "moves":
		return PowerExtraMoves, true
	default:
		return PowerBomb, false
	}
}

// Inventory counts remaining power-up uses.
type Inventory struct {
	Bomb       int `json:"bomb"`
	Shuffle    int `json:"shuffle"`
	ExtraMoves int `json:"extra_moves"`
}

// DefaultInventory is what every new game starts with.
func DefaultInventory() Inventory {
	return Inventory{Bomb: 2, Shuffle: 1, ExtraMoves: 1}
}

// Count returns the uses left for p.
func (inv Inventory) Count(p PowerUp) int {
	switch p {
	case PowerBomb:
		return inv.Bomb
	case PowerShuffle:
		return inv.Shuffle
	case PowerExtraMoves:
		return inv.ExtraMoves
	default:
		return 0
	}
}

// Use spends one use of p. ok is false if none are left.
func (inv Inventory) Use(p PowerUp) (out Inventory, ok bool) {
	if inv.Count(p) <= 0 {
		return inv, false
	}
	switch p {
	case PowerBomb:
		inv.Bomb--
	case PowerShuffle:
		inv.Shuffle--
	case PowerExtraMoves:
		inv.ExtraMoves--
	}
	return inv, true
}
