package knowledge

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/knowledge.yaml
var defaultKnowledge []byte

// maxRuleCells caps the base's total size (conditions x defining symptoms).
// Assessment is a linear scan over these cells, so the cap bounds worst-case
// latency deterministically.
const maxRuleCells = 50000

// LoadError reports a malformed or inconsistent knowledge base. It is fatal
// at startup: the server must never serve assessments against a partial base.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("knowledge base load failed (%s): %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Base is one fully built, immutable knowledge base snapshot. All lookups are
// read-only; concurrent sessions share a Base without locking.
type Base struct {
	meta       Meta
	symptoms   map[string]Symptom
	conditions []Condition

	vocabulary map[string]string // lower-cased name/alias -> symptom id
	emergency  map[string]bool   // symptom id -> emergency indicator
	species    map[string]bool
}

// LoadDefault builds a Base from the knowledge data embedded in the binary.
func LoadDefault() (*Base, error) {
	return build(defaultKnowledge, "embedded")
}

// LoadBytes builds a Base from raw YAML.
func LoadBytes(data []byte) (*Base, error) {
	return build(data, "inline")
}

// LoadFile builds a Base from a YAML file on disk.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return build(data, path)
}

func build(data []byte, source string) (*Base, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	b := &Base{
		meta:       f.Meta,
		symptoms:   make(map[string]Symptom, len(f.Symptoms)),
		vocabulary: make(map[string]string),
		emergency:  make(map[string]bool),
		species:    make(map[string]bool),
	}
	if b.meta.TopK <= 0 {
		b.meta.TopK = 3
	}

	if len(f.Symptoms) == 0 {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("symptom vocabulary is empty")}
	}
	if len(f.Meta.Species) == 0 {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("meta.species is empty")}
	}
	for _, s := range f.Meta.Species {
		b.species[strings.ToLower(s)] = true
	}

	for _, s := range f.Symptoms {
		if s.ID == "" {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("symptom with empty id")}
		}
		if _, dup := b.symptoms[s.ID]; dup {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("duplicate symptom id %q", s.ID)}
		}
		b.symptoms[s.ID] = s
		if s.Emergency {
			b.emergency[s.ID] = true
		}
		b.addVocabulary(s.ID, s.ID)
		b.addVocabulary(s.Name, s.ID)
		for _, alias := range s.Aliases {
			b.addVocabulary(alias, s.ID)
		}
	}

	ruleCells := 0
	seen := make(map[string]bool, len(f.Conditions))
	for _, c := range f.Conditions {
		ruleCells += len(c.Symptoms)
		if ruleCells > maxRuleCells {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("knowledge base exceeds %d rule cells", maxRuleCells)}
		}
		if c.ID == "" {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("condition with empty id")}
		}
		if seen[c.ID] {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("duplicate condition id %q", c.ID)}
		}
		seen[c.ID] = true
		// Species, modifier, and exclusion matches compare against the pet's
		// lower-cased attributes; canonicalize authored values up front.
		for i := range c.Species {
			c.Species[i] = strings.ToLower(strings.TrimSpace(c.Species[i]))
		}
		for i := range c.Modifiers {
			c.Modifiers[i].Match = strings.ToLower(strings.TrimSpace(c.Modifiers[i].Match))
		}
		for i := range c.Exclusions {
			c.Exclusions[i].Match = strings.ToLower(strings.TrimSpace(c.Exclusions[i].Match))
		}
		if err := b.validateCondition(c); err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}
		b.conditions = append(b.conditions, c)
	}

	// Deterministic scan order regardless of authoring order.
	sort.Slice(b.conditions, func(i, j int) bool {
		return b.conditions[i].ID < b.conditions[j].ID
	})

	return b, nil
}

func (b *Base) validateCondition(c Condition) error {
	if !c.Severity.Valid() {
		return fmt.Errorf("condition %q: invalid severity %q", c.ID, c.Severity)
	}
	if c.BaseConfidence <= 0 || c.BaseConfidence > 1 {
		return fmt.Errorf("condition %q: base_confidence %v outside (0,1]", c.ID, c.BaseConfidence)
	}
	if len(c.Symptoms) == 0 {
		return fmt.Errorf("condition %q: no defining symptoms", c.ID)
	}
	for _, s := range c.Symptoms {
		if _, ok := b.symptoms[s.ID]; !ok {
			return fmt.Errorf("condition %q: unknown symptom %q", c.ID, s.ID)
		}
		if s.Weight <= 0 {
			return fmt.Errorf("condition %q: symptom %q weight %v must be positive", c.ID, s.ID, s.Weight)
		}
	}
	if len(c.Species) == 0 {
		return fmt.Errorf("condition %q: species list is empty", c.ID)
	}
	for _, sp := range c.Species {
		if sp != SpeciesAll && !b.species[sp] {
			return fmt.Errorf("condition %q: unknown species %q", c.ID, sp)
		}
	}
	for _, m := range c.Modifiers {
		if m.Kind != ModifierAge && m.Kind != ModifierBreed {
			return fmt.Errorf("condition %q: unknown modifier kind %q", c.ID, m.Kind)
		}
		if m.Match == "" {
			return fmt.Errorf("condition %q: modifier %s has empty match", c.ID, m.Kind)
		}
		if m.Factor < 1.0 || m.Factor > 2.0 {
			return fmt.Errorf("condition %q: modifier factor %v outside [1.0, 2.0]", c.ID, m.Factor)
		}
	}
	for _, e := range c.Exclusions {
		if e.Kind != ModifierAge && e.Kind != ModifierBreed {
			return fmt.Errorf("condition %q: unknown exclusion kind %q", c.ID, e.Kind)
		}
		if e.Match == "" {
			return fmt.Errorf("condition %q: exclusion %s has empty match", c.ID, e.Kind)
		}
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("condition %q: confidence_threshold %v outside [0,1]", c.ID, c.ConfidenceThreshold)
	}
	return nil
}

func (b *Base) addVocabulary(phrase, id string) {
	key := canonicalKey(phrase)
	if key == "" {
		return
	}
	b.vocabulary[key] = id
}

// canonicalKey lower-cases a phrase and collapses separators so that
// "Not Eating", "not_eating" and "not  eating" all hit the same entry.
func canonicalKey(phrase string) string {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	fields := strings.FieldsFunc(phrase, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	return strings.Join(fields, "_")
}

// Meta returns the knowledge-base settings.
func (b *Base) Meta() Meta { return b.meta }

// Conditions returns every condition, ordered by id.
func (b *Base) Conditions() []Condition { return b.conditions }

// ConditionsFor returns the conditions applicable to the given species.
func (b *Base) ConditionsFor(species string) []Condition {
	var out []Condition
	for i := range b.conditions {
		if b.conditions[i].AppliesTo(species) {
			out = append(out, b.conditions[i])
		}
	}
	return out
}

// Symptom looks up a vocabulary entry by canonical id.
func (b *Base) Symptom(id string) (Symptom, bool) {
	s, ok := b.symptoms[id]
	return s, ok
}

// Symptoms returns the full vocabulary, ordered by id.
func (b *Base) Symptoms() []Symptom {
	out := make([]Symptom, 0, len(b.symptoms))
	for _, s := range b.symptoms {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Canonical resolves a free-text phrase or selection key to a symptom id.
func (b *Base) Canonical(phrase string) (string, bool) {
	id, ok := b.vocabulary[canonicalKey(phrase)]
	return id, ok
}

// IsEmergencySymptom reports whether the symptom id is an emergency indicator.
func (b *Base) IsEmergencySymptom(id string) bool { return b.emergency[id] }

// KnowsSpecies reports whether the species appears in the knowledge base.
func (b *Base) KnowsSpecies(species string) bool {
	return b.species[strings.ToLower(species)]
}
