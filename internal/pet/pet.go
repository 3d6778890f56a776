package pet

import "strings"

// Age categories used by the scorer's age modifiers.
const (
	CategoryPuppy   = "puppy"
	CategoryKitten  = "kitten"
	CategoryAdult   = "adult"
	CategorySenior  = "senior"
	CategoryUnknown = "unknown"
)

// Profile describes the pet an assessment is about. Species is required;
// everything else is optional context.
type Profile struct {
	Name     string  `json:"name,omitempty"`
	Species  string  `json:"species"`
	Breed    string  `json:"breed,omitempty"`
	AgeYears float64 `json:"age_years,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`

	MedicalHistory     []string `json:"medical_history,omitempty"`
	CurrentMedications []string `json:"current_medications,omitempty"`
}

// NormalizedSpecies returns the species in canonical lower-case form.
func (p Profile) NormalizedSpecies() string {
	return strings.ToLower(strings.TrimSpace(p.Species))
}

// NormalizedBreed returns the breed in canonical lower-case form.
func (p Profile) NormalizedBreed() string {
	return strings.ToLower(strings.TrimSpace(p.Breed))
}

// AgeCategory buckets the pet's age. Brackets differ per species: dogs are
// seniors from 7 years, cats from 10. A zero age means the age is unknown.
func (p Profile) AgeCategory() string {
	if p.AgeYears <= 0 {
		return CategoryUnknown
	}
	switch p.NormalizedSpecies() {
	case "dog":
		switch {
		case p.AgeYears < 0.5:
			return CategoryPuppy
		case p.AgeYears < 7:
			return CategoryAdult
		default:
			return CategorySenior
		}
	case "cat":
		switch {
		case p.AgeYears < 0.5:
			return CategoryKitten
		case p.AgeYears < 10:
			return CategoryAdult
		default:
			return CategorySenior
		}
	default:
		// Other species age very differently; without per-species tables
		// we only distinguish young animals.
		if p.AgeYears < 0.5 {
			return CategoryUnknown
		}
		return CategoryAdult
	}
}

// IsSenior reports whether the pet falls in the senior bracket.
func (p Profile) IsSenior() bool {
	return p.AgeCategory() == CategorySenior
}
