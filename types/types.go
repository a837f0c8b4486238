package types

import "time"

// DamageKind is a categorical label for one type of visible building defect.
// The detector may emit kinds outside this list; they are tolerated everywhere.
type DamageKind string

const (
	MajorCrack DamageKind = "major_crack"
	Crack      DamageKind = "crack"
	MinorCrack DamageKind = "minor_crack"
	Spalling   DamageKind = "spalling"
	Peeling    DamageKind = "peeling"
	Algae      DamageKind = "algae"
	Stain      DamageKind = "stain"
	Normal     DamageKind = "normal"
)

// DetectionCounts maps each damage kind to its per-image occurrence count.
// A missing key means zero occurrences.
type DetectionCounts map[DamageKind]int

// Total sums every occurrence across all kinds.
func (d DetectionCounts) Total() int {
	total := 0
	for _, count := range d {
		total += count
	}
	return total
}

type Severity string

const (
	Good     Severity = "Good"
	Moderate Severity = "Moderate"
	Critical Severity = "Critical"
)

// Rank gives the position of a severity in the Good < Moderate < Critical
// order. Unknown values rank below Good.
func (s Severity) Rank() int {
	switch s {
	case Good:
		return 1
	case Moderate:
		return 2
	case Critical:
		return 3
	}
	return 0
}

// Severities lists the tiers from best to worst.
func Severities() []Severity {
	return []Severity{Good, Moderate, Critical}
}

// Assessment is the immutable result of analyzing one image. It is built once
// and never modified; an "update" means building a new record and dropping the
// old one from the history.
type Assessment struct {
	ID          string          `firestore:"-" json:"id"`
	CreatedAt   time.Time       `firestore:"createdAt" json:"created_at"`
	Counts      DetectionCounts `firestore:"detectedDamages" json:"detected_damages"`
	Severity    Severity        `firestore:"severity" json:"severity"`
	HealthScore int             `firestore:"healthScore" json:"health_score"`
	Precautions []string        `firestore:"precautions" json:"precautions"`
	ImageURL    string          `firestore:"imageUrl,omitempty" json:"image_url,omitempty"`
}

// Statistics is derived on demand from an assessment history and is never
// persisted on its own.
type Statistics struct {
	TotalCount        int              `json:"total_count"`
	AverageScore      int              `json:"average_score"`
	SeverityHistogram map[Severity]int `json:"severity_histogram"`
}
