package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	GroupDelts     = "Delts"
	GroupChest     = "Chest"
	GroupBiceps    = "Biceps"
	GroupButt      = "Butt"
	GroupBackLats  = "Back Lats"
	GroupBackMids  = "Back Mids"
	GroupBackLower = "Back Lower"
	GroupBackCombo = "Back Combo"
	GroupAbsUpper  = "Abs Upper"
	GroupAbsLower  = "Abs Lower"
	GroupAbsCombo  = "Abs Combo"
	GroupTriceps   = "Triceps"
	GroupCalves    = "Calves"
	GroupThighs    = "Thighs"
)

// RequiredGroups are the groups the day templates draw from.
var RequiredGroups = []string{
	GroupDelts, GroupChest, GroupBiceps, GroupButt,
	GroupBackLats, GroupBackMids, GroupBackLower, GroupBackCombo,
	GroupAbsUpper, GroupAbsLower, GroupAbsCombo,
	GroupTriceps, GroupCalves, GroupThighs,
}

var ErrMissingGroup = errors.New("catalog group missing")

// Catalog is immutable after construction.
type Catalog struct {
	groups map[string][]Exercise
	byName map[string]Exercise
}

func New(groups map[string][]Exercise) *Catalog {
	c := &Catalog{
		groups: make(map[string][]Exercise, len(groups)),
		byName: make(map[string]Exercise),
	}
	for name, exercises := range groups {
		c.groups[name] = append([]Exercise(nil), exercises...)
		for _, e := range exercises {
			// first definition wins when a name shows up in several groups
			if _, ok := c.byName[e.Name]; !ok {
				c.byName[e.Name] = e
			}
		}
	}
	return c
}

// LoadYAML reads a catalog of the form
//
//	Delts:
//	  - name: Lateral Raise
//	    base: 20
//	Thighs:
//	  - name: Clam Shells
//	    base: band
func LoadYAML(r io.Reader) (*Catalog, error) {
	var groups map[string][]Exercise
	if err := yaml.NewDecoder(r).Decode(&groups); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}
	for _, g := range RequiredGroups {
		if len(groups[g]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingGroup, g)
		}
	}
	return New(groups), nil
}

// LoadFile returns the built-in catalog when path is empty, the YAML
// override at path otherwise.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("close catalog file: %s", err)
		}
	}()

	c, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog [%s]: %w", path, err)
	}
	log.Infof("loaded exercise catalog from %s", path)
	return c, nil
}

func (c *Catalog) Group(name string) ([]Exercise, bool) {
	exercises, ok := c.groups[name]
	if !ok {
		return nil, false
	}
	return append([]Exercise(nil), exercises...), true
}

func (c *Catalog) Groups() map[string][]Exercise {
	out := make(map[string][]Exercise, len(c.groups))
	for name := range c.groups {
		out[name], _ = c.Group(name)
	}
	return out
}

func (c *Catalog) Lookup(exerciseName string) (Exercise, bool) {
	e, ok := c.byName[exerciseName]
	return e, ok
}

// ExerciseNames returns every exercise name, sorted.
func (c *Catalog) ExerciseNames() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
