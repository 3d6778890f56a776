package knowledge

// Severity classifies how urgent a condition is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Rank returns the ordinal position of the severity (low=0 .. critical=3).
// Unknown severities rank below low.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// SpeciesAll marks a condition as applicable to every species.
const SpeciesAll = "all"

// Symptom is one entry of the canonical symptom vocabulary.
type Symptom struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    string   `yaml:"category" json:"category"`
	Aliases     []string `yaml:"aliases" json:"aliases,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	// Emergency marks the symptom as an emergency indicator: its presence
	// alone mandates immediate-care guidance.
	Emergency bool `yaml:"emergency" json:"emergency"`
}

// DefiningSymptom is a symptom that characterizes a condition, with its
// relative importance in the match ratio.
type DefiningSymptom struct {
	ID     string  `yaml:"id" json:"id"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Modifier kinds recognized by the scorer. Modifiers are enumerated per
// condition in the knowledge base, never inferred.
const (
	ModifierAge   = "age"
	ModifierBreed = "breed"
)

// Modifier adjusts a condition's confidence when the pet's attributes match.
// Match values are canonicalized to lower-case when the base is built.
type Modifier struct {
	Kind   string  `yaml:"kind" json:"kind"`     // "age" or "breed"
	Match  string  `yaml:"match" json:"match"`   // age category or breed name
	Factor float64 `yaml:"factor" json:"factor"` // typically 1.1 - 1.2
}

// Exclusion rules a condition out entirely for pets whose attribute matches,
// e.g. an adult-onset disease excluded for puppies. Same shape and
// canonicalization as Modifier, without a factor.
type Exclusion struct {
	Kind  string `yaml:"kind" json:"kind"`   // "age" or "breed"
	Match string `yaml:"match" json:"match"` // age category or breed name
}

// Condition is a named health issue with defining symptoms and care guidance.
type Condition struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    string   `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Severity    Severity `yaml:"severity" json:"severity"`

	// Species the condition applies to; ["all"] applies everywhere.
	// Entries are canonicalized to lower-case when the base is built.
	Species []string `yaml:"species" json:"species"`

	BaseConfidence float64           `yaml:"base_confidence" json:"base_confidence"`
	Symptoms       []DefiningSymptom `yaml:"symptoms" json:"symptoms"`
	Modifiers      []Modifier        `yaml:"modifiers" json:"modifiers,omitempty"`
	Exclusions     []Exclusion       `yaml:"exclusions" json:"exclusions,omitempty"`

	// ConfidenceThreshold hides the condition from the ranked list when its
	// final confidence falls below it. Zero keeps every non-zero match.
	ConfidenceThreshold float64 `yaml:"confidence_threshold" json:"confidence_threshold"`

	Actions []string `yaml:"actions" json:"actions"`

	// IsEmergencyIndicator raises the emergency flag whenever this condition
	// matches at all, independent of its confidence.
	IsEmergencyIndicator bool `yaml:"is_emergency_indicator" json:"is_emergency_indicator"`
}

// AppliesTo reports whether the condition covers the given species.
// Species must already be canonical (lower-case).
func (c *Condition) AppliesTo(species string) bool {
	for _, s := range c.Species {
		if s == SpeciesAll || s == species {
			return true
		}
	}
	return false
}

// TotalWeight is the sum of the weights of all defining symptoms.
func (c *Condition) TotalWeight() float64 {
	var total float64
	for _, s := range c.Symptoms {
		total += s.Weight
	}
	return total
}

// Meta carries knowledge-base wide settings.
type Meta struct {
	// TopK bounds how many ranked conditions feed the recommendation
	// composer. Defaults to 3 when unset.
	TopK       int      `yaml:"top_k" json:"top_k"`
	Disclaimer string   `yaml:"disclaimer" json:"disclaimer"`
	Species    []string `yaml:"species" json:"species"`
}

// file is the on-disk / embedded YAML document shape.
type file struct {
	Meta       Meta        `yaml:"meta"`
	Symptoms   []Symptom   `yaml:"symptoms"`
	Conditions []Condition `yaml:"conditions"`
}
