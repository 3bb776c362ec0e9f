package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var heartPlant = PlantDefinition{
	Name:        "Heart Plant",
	ImageKey:    "heart-plant",
	WaterNeeded: WaterNeeded{Phase1: 24, Phase2: 48, Phase3: 96},
}

func TestNewPlant_SeedsFromDefinition(t *testing.T) {
	now := time.Date(2020, 12, 14, 10, 0, 0, 0, time.UTC)
	p := NewPlant(heartPlant, now)

	assert.True(t, p.IsCurrent)
	assert.Equal(t, 0, p.WaterLevel)
	assert.Equal(t, PhaseSeed, p.Phase)
	assert.Equal(t, now, p.DatePlanted)
	assert.Equal(t, "heart-plant", p.ImageKey)
	assert.Equal(t, "Heart Plant", p.Species)
	assert.Empty(t, p.Nickname)
	assert.Equal(t, heartPlant.WaterNeeded, p.WaterNeeded)
}

func TestPlantWater_AdvancesPhases(t *testing.T) {
	tests := []struct {
		name   string
		amount []int
		level  int
		phase  int
	}{
		{"below first threshold", []int{23}, 23, PhaseSeed},
		{"exactly first threshold", []int{24}, 24, PhaseSprout},
		{"cumulative", []int{20, 10, 20}, 50, PhaseBloom},
		{"one big pour skips phases", []int{100}, 100, PhaseGrown},
		{"grown keeps absorbing water", []int{96, 4}, 100, PhaseGrown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlant(heartPlant, time.Now())
			for _, a := range tt.amount {
				p.Water(a)
			}
			assert.Equal(t, tt.level, p.WaterLevel)
			assert.Equal(t, tt.phase, p.Phase)
			assert.Equal(t, tt.phase == PhaseGrown, p.FullyGrown())
		})
	}
}

func TestPlantWater_SaturatesAtMaxInt(t *testing.T) {
	p := NewPlant(heartPlant, time.Now())

	p.Water(math.MaxInt)
	assert.Equal(t, math.MaxInt, p.WaterLevel)
	assert.Equal(t, PhaseGrown, p.Phase)

	p.Water(5)
	assert.Equal(t, math.MaxInt, p.WaterLevel)
	assert.GreaterOrEqual(t, p.WaterLevel, 0)
}

func TestPlaceholder(t *testing.T) {
	assert.False(t, heartPlant.IsPlaceholder())
	assert.True(t, PlantDefinition{Name: "Coming Soon", ImageKey: "question-mark"}.IsPlaceholder())
}

func TestWaterNeededFor(t *testing.T) {
	w := heartPlant.WaterNeeded
	for phase, want := range []int{24, 48, 96} {
		got, ok := w.For(phase)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := w.For(PhaseGrown)
	assert.False(t, ok)
}
