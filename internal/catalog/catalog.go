// Package catalog loads the quest and weekly challenge templates.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrInvalidCatalog = errors.New("invalid quest catalog")

type file struct {
	Quests     map[domain.Category][]domain.QuestTemplate `yaml:"quests"`
	Challenges []domain.ChallengeTemplate                 `yaml:"challenges"`
}

// Catalog is an immutable set of templates. It implements domain.QuestCatalog.
type Catalog struct {
	quests     map[domain.Category][]domain.QuestTemplate
	challenges []domain.ChallengeTemplate
	byID       map[string]domain.QuestTemplate
}

// Default returns the catalogue compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalogue override file. An empty path yields the default catalogue.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	c := &Catalog{
		quests:     make(map[domain.Category][]domain.QuestTemplate, len(domain.Categories)),
		challenges: f.Challenges,
		byID:       make(map[string]domain.QuestTemplate),
	}

	for category, templates := range f.Quests {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidCatalog, category)
		}
		for i := range templates {
			tpl := &templates[i]
			tpl.Category = category
			if tpl.MinLevel < 1 {
				tpl.MinLevel = 1
			}
			if err := validateQuest(*tpl); err != nil {
				return nil, err
			}
			if _, dup := c.byID[tpl.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate quest id %q", ErrInvalidCatalog, tpl.ID)
			}
			c.byID[tpl.ID] = *tpl
		}
		c.quests[category] = templates
	}

	// Generation needs at least one level 1 template per category.
	for _, category := range domain.Categories {
		if !hasEntryLevel(c.quests[category]) {
			return nil, fmt.Errorf("%w: category %s has no level 1 quest", ErrInvalidCatalog, category)
		}
	}

	if len(c.challenges) == 0 {
		return nil, fmt.Errorf("%w: no weekly challenges", ErrInvalidCatalog)
	}
	for i := range c.challenges {
		ch := &c.challenges[i]
		if ch.MinLevel < 1 {
			ch.MinLevel = 1
		}
		if ch.ID == "" || !ch.Objective.Valid() || ch.Target < 1 || ch.XP < 0 {
			return nil, fmt.Errorf("%w: challenge %q", ErrInvalidCatalog, ch.ID)
		}
	}

	return c, nil
}

func validateQuest(tpl domain.QuestTemplate) error {
	switch {
	case tpl.ID == "":
		return fmt.Errorf("%w: quest without id in %s", ErrInvalidCatalog, tpl.Category)
	case tpl.Title == "":
		return fmt.Errorf("%w: quest %q has no title", ErrInvalidCatalog, tpl.ID)
	case !tpl.Difficulty.Valid():
		return fmt.Errorf("%w: quest %q has difficulty %q", ErrInvalidCatalog, tpl.ID, tpl.Difficulty)
	case tpl.XP <= 0:
		return fmt.Errorf("%w: quest %q has no xp", ErrInvalidCatalog, tpl.ID)
	}
	return nil
}

func hasEntryLevel(templates []domain.QuestTemplate) bool {
	for _, t := range templates {
		if t.MinLevel <= 1 {
			return true
		}
	}
	return false
}

func (c *Catalog) Templates(category domain.Category) []domain.QuestTemplate {
	src := c.quests[category]
	out := make([]domain.QuestTemplate, len(src))
	copy(out, src)
	return out
}

func (c *Catalog) Challenges() []domain.ChallengeTemplate {
	out := make([]domain.ChallengeTemplate, len(c.challenges))
	copy(out, c.challenges)
	return out
}

// Size reports the number of quest templates.
func (c *Catalog) Size() int {
	return len(c.byID)
}
