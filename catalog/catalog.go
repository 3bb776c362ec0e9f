package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZamarianPatrick/oasis-backend/model"
	"github.com/gookit/validate"
	"gopkg.in/yaml.v2"
)

var ErrUnknownPlant = errors.New("no such plant in the catalog")

type Settings struct {
	Offerings []model.PlantDefinition `yaml:"offerings"`
}

var (
	ComingSoon = model.PlantDefinition{
		Name:     "Coming Soon",
		ImageKey: "question-mark",
	}

	DefaultSettings = Settings{
		Offerings: []model.PlantDefinition{
			{
				Name:        "Heart Plant",
				ImageKey:    "heart-plant",
				WaterNeeded: model.WaterNeeded{Phase1: 24, Phase2: 48, Phase3: 96},
			},
			{
				Name:        "Roses",
				ImageKey:    "rose",
				WaterNeeded: model.WaterNeeded{Phase1: 24, Phase2: 64, Phase3: 128},
			},
			{
				Name:        "Cactus",
				ImageKey:    "cactus",
				WaterNeeded: model.WaterNeeded{Phase1: 32, Phase2: 80, Phase3: 160},
			},
			{
				Name:        "Sunflower",
				ImageKey:    "sunflower",
				WaterNeeded: model.WaterNeeded{Phase1: 32, Phase2: 64, Phase3: 96},
			},
			ComingSoon,
		},
	}
)

// Catalog is the ordered, immutable list of plants offered by the shop.
// It always ends with exactly one placeholder entry.
type Catalog struct {
	offerings []model.PlantDefinition
}

func Default() *Catalog {
	c, err := New(DefaultSettings.Offerings)
	if err != nil {
		panic(err)
	}
	return c
}

// New validates the definitions and moves the placeholder to the end. A
// catalog without a placeholder gets ComingSoon appended.
func New(defs []model.PlantDefinition) (*Catalog, error) {
	var (
		offerings   []model.PlantDefinition
		placeholder *model.PlantDefinition
		seen        = make(map[string]struct{}, len(defs))
	)

	for i := range defs {
		def := defs[i]

		v := validate.Struct(&def)
		if !v.Validate() {
			return nil, fmt.Errorf("offering %d: %s", i, v.Errors.One())
		}

		key := strings.ToLower(def.Name)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("offering %d: duplicate name %q", i, def.Name)
		}
		seen[key] = struct{}{}

		if def.IsPlaceholder() {
			if placeholder != nil {
				return nil, fmt.Errorf("offering %d: %q is a second placeholder, %q is already one", i, def.Name, placeholder.Name)
			}
			placeholder = &def
			continue
		}

		if err := checkThresholds(def.WaterNeeded); err != nil {
			return nil, fmt.Errorf("offering %d (%s): %w", i, def.Name, err)
		}
		offerings = append(offerings, def)
	}

	if len(offerings) == 0 {
		return nil, errors.New("catalog has no purchasable plants")
	}

	if placeholder == nil {
		if _, ok := seen[strings.ToLower(ComingSoon.Name)]; ok {
			return nil, fmt.Errorf("%q is reserved for the placeholder", ComingSoon.Name)
		}
		p := ComingSoon
		placeholder = &p
	}

	return &Catalog{offerings: append(offerings, *placeholder)}, nil
}

func checkThresholds(w model.WaterNeeded) error {
	if w.Phase1 <= 0 || w.Phase2 <= 0 || w.Phase3 <= 0 {
		return errors.New("water thresholds must be positive")
	}
	if w.Phase1 > w.Phase2 || w.Phase2 > w.Phase3 {
		return errors.New("water thresholds must not decrease")
	}
	return nil
}

// Load reads the catalog file at path, writing DefaultSettings there first if
// it does not exist yet.
func Load(path string) (*Catalog, error) {
	var settings Settings

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		settings = DefaultSettings

		data, err := yaml.Marshal(settings)
		if err != nil {
			return nil, err
		}

		if err = os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("unable to create catalog file: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err = yaml.UnmarshalStrict(data, &settings); err != nil {
			return nil, fmt.Errorf("unable to parse catalog %s: %w", path, err)
		}
	}

	return New(settings.Offerings)
}

// ListOfferings returns a copy of all entries, the placeholder last.
func (c *Catalog) ListOfferings() []model.PlantDefinition {
	out := make([]model.PlantDefinition, len(c.offerings))
	copy(out, c.offerings)
	return out
}

func (c *Catalog) Len() int {
	return len(c.offerings)
}

func (c *Catalog) Placeholder() model.PlantDefinition {
	return c.offerings[len(c.offerings)-1]
}

// First is the first purchasable entry, used to seed an empty garden.
func (c *Catalog) First() model.PlantDefinition {
	return c.offerings[0]
}

// At returns the entry shown at position index of the shop grid, the
// placeholder included.
func (c *Catalog) At(index int) (model.PlantDefinition, error) {
	if index < 0 || index >= len(c.offerings) {
		return model.PlantDefinition{}, fmt.Errorf("index %d: %w", index, ErrUnknownPlant)
	}
	return c.offerings[index], nil
}

func (c *Catalog) Lookup(name string) (model.PlantDefinition, error) {
	for _, def := range c.offerings {
		if strings.EqualFold(def.Name, strings.TrimSpace(name)) {
			return def, nil
		}
	}
	return model.PlantDefinition{}, fmt.Errorf("%q: %w", name, ErrUnknownPlant)
}
