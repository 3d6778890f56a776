package assessment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pet-care-advisor/internal/knowledge"
)

// testKB is a small fixture base with hand-checkable arithmetic.
const testKB = `
meta:
  top_k: 2
  disclaimer: Test disclaimer.
  species: [dog, cat]
symptoms:
  - id: vomiting
    name: Vomiting
    category: digestive
    aliases: [throwing up]
  - id: diarrhea
    name: Diarrhea
    category: digestive
  - id: appetite_loss
    name: Loss of appetite
    category: digestive
    aliases: [not eating]
  - id: lethargy
    name: Lethargy
    category: general
  - id: limping
    name: Limping
    category: musculoskeletal
  - id: itching
    name: Itching
    category: skin
  - id: bloated_abdomen
    name: Bloated abdomen
    category: digestive
    emergency: true
  - id: seizures
    name: Seizures
    category: neurological
    emergency: true
    aliases: [seizure]
conditions:
  - id: gastro
    name: Gastroenteritis
    category: digestive
    severity: medium
    species: [all]
    base_confidence: 0.8
    symptoms:
      - { id: vomiting, weight: 2.0 }
      - { id: diarrhea, weight: 2.0 }
      - { id: appetite_loss, weight: 1.0 }
      - { id: lethargy, weight: 1.0 }
    actions:
      - Feed a bland diet
      - Provide fresh water
  - id: cat_flu
    name: Cat flu
    category: respiratory
    severity: high
    species: [cat]
    base_confidence: 0.9
    symptoms:
      - { id: vomiting, weight: 2.0 }
      - { id: appetite_loss, weight: 1.0 }
    actions:
      - Keep the cat warm
      - Provide fresh water
  - id: arthritis
    name: Arthritis
    category: musculoskeletal
    severity: medium
    species: [dog]
    base_confidence: 0.8
    symptoms:
      - { id: limping, weight: 2.0 }
      - { id: lethargy, weight: 1.0 }
    modifiers:
      - { kind: age, match: senior, factor: 1.2 }
      - { kind: breed, match: labrador retriever, factor: 1.1 }
    exclusions:
      - { kind: age, match: puppy }
    actions:
      - Provide soft bedding
  - id: bloat
    name: Bloat
    category: digestive
    severity: critical
    species: [dog]
    base_confidence: 0.9
    is_emergency_indicator: true
    confidence_threshold: 0.3
    symptoms:
      - { id: bloated_abdomen, weight: 2.0 }
      - { id: lethargy, weight: 1.0 }
    actions:
      - Go to an emergency clinic
  - id: picky
    name: Picky
    category: digestive
    severity: low
    species: [dog]
    base_confidence: 0.9
    confidence_threshold: 0.5
    symptoms:
      - { id: vomiting, weight: 1.0 }
      - { id: diarrhea, weight: 1.0 }
    actions:
      - Picky action
  - id: tie_low
    name: Tie low
    category: skin
    severity: low
    species: [dog]
    base_confidence: 0.6
    symptoms:
      - { id: itching, weight: 1.0 }
    actions:
      - Low severity action
  - id: tie_high_b
    name: Tie high B
    category: skin
    severity: high
    species: [dog]
    base_confidence: 0.6
    symptoms:
      - { id: itching, weight: 1.0 }
    actions:
      - High severity action B
  - id: tie_high_c
    name: Tie high C
    category: skin
    severity: high
    species: [dog]
    base_confidence: 0.6
    symptoms:
      - { id: itching, weight: 1.0 }
    actions:
      - High severity action C
`

func testBase(t *testing.T) *knowledge.Base {
	t.Helper()
	b, err := knowledge.LoadBytes([]byte(testKB))
	require.NoError(t, err)
	return b
}

func defaultBase(t *testing.T) *knowledge.Base {
	t.Helper()
	b, err := knowledge.LoadDefault()
	require.NoError(t, err)
	return b
}
