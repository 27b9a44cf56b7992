// Package enemy provides enemy template definitions and live instances. A
// Template is a reusable archetype loaded from YAML; an Instance is one
// opponent in one encounter.
package enemy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lmoretti/emberquest/internal/game/element"
)

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Tier is the enemy's difficulty tier, starting at 1.
	Tier int `yaml:"tier"`

	HP      int `yaml:"hp"`
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`

	// Element is the enemy's innate element tag; empty defaults to None.
	Element string `yaml:"element"`
	// Resistances maps element tag to resist value (0.2 = 20% reduction).
	Resistances map[string]float64 `yaml:"resistances"`
	// Immunities lists elements this enemy takes no damage from.
	Immunities []string `yaml:"immunities"`
	// Vulnerabilities lists elements this enemy takes extra damage from.
	Vulnerabilities []string `yaml:"vulnerabilities"`

	// Abilities lists the ability ids this enemy can use.
	Abilities []string `yaml:"abilities"`
	// Evasion is the enemy's fixed evasion chance in [0, 1].
	Evasion float64 `yaml:"evasion"`
	// Boss marks the enemy as a boss: reduced evasion against attacks, harder
	// to flee from, and periodic abilities.
	Boss bool `yaml:"boss"`
	// Regeneration is the health recovered between encounters; 0 for none.
	Regeneration int `yaml:"regeneration"`

	GoldReward int `yaml:"gold_reward"`
	XPReward   int `yaml:"xp_reward"`

	Tags []string `yaml:"tags"`
}

// Validate checks that the template satisfies its invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff all fields are valid.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	if t.HP < 1 {
		return fmt.Errorf("enemy template %q: hp must be >= 1", t.ID)
	}
	if t.Attack < 0 {
		return fmt.Errorf("enemy template %q: attack must be >= 0", t.ID)
	}
	if t.Defense < 0 {
		return fmt.Errorf("enemy template %q: defense must be >= 0", t.ID)
	}
	if t.Element != "" && !element.Valid(t.Element) {
		return fmt.Errorf("enemy template %q: unknown element %q", t.ID, t.Element)
	}
	if t.Evasion < 0 || t.Evasion > 1 {
		return fmt.Errorf("enemy template %q: evasion must be in [0, 1], got %g", t.ID, t.Evasion)
	}
	if t.GoldReward < 0 || t.XPReward < 0 {
		return fmt.Errorf("enemy template %q: rewards must be >= 0", t.ID)
	}
	for _, e := range t.Immunities {
		if !element.Valid(e) {
			return fmt.Errorf("enemy template %q: unknown immunity element %q", t.ID, e)
		}
	}
	for _, e := range t.Vulnerabilities {
		if !element.Valid(e) {
			return fmt.Errorf("enemy template %q: unknown vulnerability element %q", t.ID, e)
		}
	}
	return nil
}

// ParseTemplate parses a single enemy template from raw YAML bytes and
// validates it. An empty element tag is normalized to element.None and a zero
// tier to 1.
//
// Precondition: data must be valid YAML for a single Template.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing enemy template YAML: %w", err)
	}
	if t.Element == "" {
		t.Element = element.None
	}
	if t.Tier == 0 {
		t.Tier = 1
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplates reads all *.yaml files in dir into a map keyed by template ID.
// Malformed or invalid files are skipped with a warning; only an unreadable
// directory is a hard error.
//
// Precondition: dir must be a readable directory; logger must be non-nil.
// Postcondition: Returns every valid template in dir keyed by ID.
func LoadTemplates(dir string, logger *zap.Logger) (map[string]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemies dir %q: %w", dir, err)
	}

	templates := make(map[string]*Template)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable enemy template",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		tmpl, err := ParseTemplate(data)
		if err != nil {
			logger.Warn("skipping malformed enemy template",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		if _, exists := templates[tmpl.ID]; exists {
			logger.Warn("skipping duplicate enemy template",
				zap.String("path", path),
				zap.String("id", tmpl.ID),
			)
			continue
		}
		templates[tmpl.ID] = tmpl
	}
	return templates, nil
}
