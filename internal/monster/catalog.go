package monster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/stats"
)

// ErrNotFound is returned when no template matches a name.
var ErrNotFound = errors.New("monster not found")

// Catalog is the ordered set of monster templates loaded at startup.
type Catalog struct {
	templates []*Template
	byName    map[string]*Template
}

// NewCatalog builds a catalog; later duplicates of a name are dropped.
func NewCatalog(templates []*Template) *Catalog {
	c := &Catalog{byName: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		key := strings.ToLower(t.Name)
		if _, dup := c.byName[key]; dup {
			logger.Warning("Duplicate monster in catalog", "name", t.Name)
			continue
		}
		c.byName[key] = t
		c.templates = append(c.templates, t)
	}
	return c
}

// Templates returns the templates in catalog order. The slice is a copy.
func (c *Catalog) Templates() []*Template {
	return append([]*Template(nil), c.templates...)
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// Get returns the template with exactly this name (case-insensitive).
func (c *Catalog) Get(name string) (*Template, bool) {
	t, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Find looks a monster up by exact name, then by unique prefix. When the
// prefix matches several templates, nil is returned with the candidates so
// the caller can ask the user to pick one.
func (c *Catalog) Find(name string) (*Template, []*Template) {
	if t, ok := c.Get(name); ok {
		return t, nil
	}

	prefix := strings.ToLower(strings.TrimSpace(name))
	if prefix == "" {
		return nil, nil
	}
	var matches []*Template
	for _, t := range c.templates {
		if strings.HasPrefix(strings.ToLower(t.Name), prefix) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return nil, matches
}

// MustFind is Find for callers that cannot prompt: anything other than a
// single match is an error.
func (c *Catalog) MustFind(name string) (*Template, error) {
	t, matches := c.Find(name)
	if t != nil {
		return t, nil
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, fmt.Errorf("%q could be %s: %w", name, strings.Join(names, ", "), ErrAmbiguous)
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// LoadCatalog reads a catalog file, choosing the format by extension:
// .yaml/.yml for YAML, anything else as SRD CSV.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster data: %w", err)
	}
	defer f.Close()

	var templates []*Template
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		templates, err = ReadYAML(f)
	default:
		templates, err = ReadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse monster data %s: %w", path, err)
	}

	logger.Info("Monster catalog loaded", "path", path, "count", len(templates))
	return NewCatalog(templates), nil
}

// csv columns every row must carry
var requiredColumns = []string{"name", "cr", "ac", "hp", "speeds", "str", "dex", "con", "int", "wis", "cha"}

// ReadCSV parses SRD-style rows. Column names are case-insensitive; a
// "Modifiers" column and one boolean column per environment are optional.
func ReadCSV(r io.Reader) ([]*Template, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var templates []*Template
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		t, err := templateFromRow(field)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func templateFromRow(field func(string) string) (*Template, error) {
	name := field("name")
	if name == "" {
		return nil, errors.New("missing name")
	}
	cr, err := ParseChallengeRating(field("cr"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	ints := make(map[string]int)
	for _, col := range []string{"ac", "hp", "str", "dex", "con", "int", "wis", "cha"} {
		v, err := strconv.Atoi(field(col))
		if err != nil {
			return nil, fmt.Errorf("%s: column %s: %w", name, col, err)
		}
		ints[col] = v
	}
	if ints["hp"] <= 0 {
		return nil, fmt.Errorf("%s: hit points must be positive", name)
	}

	mods, err := ParseModifiers(field("modifiers"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	envs := make(map[string]bool)
	for _, env := range Environments {
		if truthy(field(env)) {
			envs[env] = true
		}
	}

	return &Template{
		Name:         name,
		Rating:       cr,
		AC:           ints["ac"],
		HP:           ints["hp"],
		Speed:        field("speeds"),
		Abilities:    stats.NewScores(ints["str"], ints["dex"], ints["con"], ints["int"], ints["wis"], ints["cha"]),
		Modifiers:    mods,
		Environments: envs,
	}, nil
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "x", "y", "yes", "true":
		return true
	}
	return false
}

// TemplateDefinition is a monster entry in a YAML catalog.
type TemplateDefinition struct {
	Name         string              `yaml:"name"`
	CR           ChallengeRating     `yaml:"cr"`
	AC           int                 `yaml:"ac"`
	HP           int                 `yaml:"hp"`
	Speed        string              `yaml:"speed"`
	Abilities    stats.AbilityScores `yaml:"abilities"`
	Modifiers    map[string]string   `yaml:"modifiers"`    // damage type or condition -> class
	Environments []string            `yaml:"environments"` // habitat tags
}

// CatalogFile represents the structure of a YAML monster catalog.
type CatalogFile struct {
	Monsters []TemplateDefinition `yaml:"monsters"`
}

// ReadYAML parses a YAML catalog.
func ReadYAML(r io.Reader) ([]*Template, error) {
	var file CatalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, err
	}

	templates := make([]*Template, 0, len(file.Monsters))
	for _, def := range file.Monsters {
		if def.Name == "" {
			return nil, errors.New("monster without a name")
		}
		if def.HP <= 0 {
			return nil, fmt.Errorf("%s: hit points must be positive", def.Name)
		}

		mods := make(map[string]ModifierClass, len(def.Modifiers))
		for rawKey, rawClass := range def.Modifiers {
			class, err := ParseModifierClass(rawClass)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", def.Name, err)
			}
			key, err := validateKey(rawKey)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", def.Name, err)
			}
			mods[key] = class
		}

		envs := make(map[string]bool, len(def.Environments))
		for _, env := range def.Environments {
			envs[strings.ToLower(strings.TrimSpace(env))] = true
		}

		templates = append(templates, &Template{
			Name:         def.Name,
			Rating:       def.CR,
			AC:           def.AC,
			HP:           def.HP,
			Speed:        def.Speed,
			Abilities:    def.Abilities,
			Modifiers:    mods,
			Environments: envs,
		})
	}
	return templates, nil
}
