package model

import (
	"math"
	"time"
)

// Phases a plant goes through. Phases 0 to 2 each consume one water threshold,
// PhaseGrown is terminal.
const (
	PhaseSeed   = 0
	PhaseSprout = 1
	PhaseBloom  = 2
	PhaseGrown  = 3
	phaseCount  = 3
)

const MaxNicknameLength = 32

// MaxWaterAmount caps a single watering.
const MaxWaterAmount = 1_000_000

// WaterNeeded holds the cumulative water thresholds for phases 0, 1 and 2.
type WaterNeeded struct {
	Phase1 int `json:"phase1" yaml:"phase1" validate:"min:0"`
	Phase2 int `json:"phase2" yaml:"phase2" validate:"min:0"`
	Phase3 int `json:"phase3" yaml:"phase3" validate:"min:0"`
}

// For returns the threshold that ends the given phase. A grown plant has no
// further threshold.
func (w WaterNeeded) For(phase int) (int, bool) {
	switch phase {
	case PhaseSeed:
		return w.Phase1, true
	case PhaseSprout:
		return w.Phase2, true
	case PhaseBloom:
		return w.Phase3, true
	default:
		return 0, false
	}
}

func (w WaterNeeded) IsZero() bool {
	return w.Phase1 == 0 && w.Phase2 == 0 && w.Phase3 == 0
}

// PlantDefinition is one entry of the shop catalog.
type PlantDefinition struct {
	Name        string      `json:"name" yaml:"name" validate:"required"`
	ImageKey    string      `json:"imageKey" yaml:"imageKey" validate:"required"`
	WaterNeeded WaterNeeded `json:"waterNeeded" yaml:"waterNeeded"`
}

// IsPlaceholder reports whether the entry only announces future inventory.
func (d PlantDefinition) IsPlaceholder() bool {
	return d.WaterNeeded.IsZero()
}

// Plant is a persisted plant record. Exactly one record is current.
type Plant struct {
	ID          uint64      `json:"id" gorm:"primaryKey"`
	IsCurrent   bool        `json:"isCurrent" gorm:"index"`
	Nickname    string      `json:"nickname"`
	Species     string      `json:"species"`
	WaterLevel  int         `json:"waterLevel"`
	Phase       int         `json:"phase"`
	DatePlanted time.Time   `json:"datePlanted"`
	ImageKey    string      `json:"imageKey"`
	WaterNeeded WaterNeeded `json:"waterNeeded" gorm:"embedded;embeddedPrefix:water_needed_"`
}

func (p *Plant) FullyGrown() bool {
	return p.Phase >= PhaseGrown
}

// Water adds amount to the cumulative water level and advances the phase
// while the level covers the threshold of the current phase. The level
// saturates at math.MaxInt.
func (p *Plant) Water(amount int) {
	if amount > math.MaxInt-p.WaterLevel {
		p.WaterLevel = math.MaxInt
	} else {
		p.WaterLevel += amount
	}
	for p.Phase < phaseCount {
		needed, _ := p.WaterNeeded.For(p.Phase)
		if p.WaterLevel < needed {
			break
		}
		p.Phase++
	}
}

// NewPlant seeds a fresh current record from a catalog entry.
func NewPlant(def PlantDefinition, plantedAt time.Time) *Plant {
	return &Plant{
		IsCurrent:   true,
		Species:     def.Name,
		WaterLevel:  0,
		Phase:       PhaseSeed,
		DatePlanted: plantedAt,
		ImageKey:    def.ImageKey,
		WaterNeeded: def.WaterNeeded,
	}
}
