package internal

import "context"

// Analyzer produces the inference-backed artifacts. A remote analysis
// client can satisfy it without touching selection or history.
type Analyzer interface {
	KeyThemes(ctx context.Context, evidence EvidenceCollection) (*KeyThemes, error)
	CaseNarrative(ctx context.Context, evidence EvidenceCollection) (*CaseNarrative, error)
}

// Theme is one recurring subject in the evidence
type Theme struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Relevance   float64 `json:"relevance" yaml:"relevance"`
}

// KeyThemes is the key_themes payload
type KeyThemes struct {
	Themes      []Theme `json:"themes" yaml:"themes"`
	Placeholder bool    `json:"placeholder" yaml:"placeholder"`
}

func (*KeyThemes) Goal() Goal { return GoalKeyThemes }

// NarrativeSection is one heading and its prose
type NarrativeSection struct {
	Heading string `json:"heading" yaml:"heading"`
	Body    string `json:"body" yaml:"body"`
}

// CaseNarrative is the case_narrative payload
type CaseNarrative struct {
	Title       string             `json:"title" yaml:"title"`
	Sections    []NarrativeSection `json:"sections" yaml:"sections"`
	Placeholder bool               `json:"placeholder" yaml:"placeholder"`
}

func (*CaseNarrative) Goal() Goal { return GoalCaseNarrative }

// PlaceholderAnalyzer returns fixed payloads regardless of the evidence
type PlaceholderAnalyzer struct{}

// NewPlaceholderAnalyzer creates a PlaceholderAnalyzer
func NewPlaceholderAnalyzer() *PlaceholderAnalyzer {
	return &PlaceholderAnalyzer{}
}

// KeyThemes returns the fixed theme list
func (a *PlaceholderAnalyzer) KeyThemes(ctx context.Context, _ EvidenceCollection) (*KeyThemes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &KeyThemes{
		Placeholder: true,
		Themes: []Theme{
			{Name: "Communication Breakdown", Description: "Recurring gaps and delays in correspondence between the parties.", Relevance: 0.9},
			{Name: "Procedural Compliance", Description: "Filing deadlines and court-ordered obligations referenced across the record.", Relevance: 0.8},
			{Name: "Financial Disputes", Description: "Disagreements over payments, fees and outstanding balances.", Relevance: 0.7},
		},
	}, nil
}

// CaseNarrative returns the fixed narrative outline
func (a *PlaceholderAnalyzer) CaseNarrative(ctx context.Context, _ EvidenceCollection) (*CaseNarrative, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &CaseNarrative{
		Title:       "Case Narrative",
		Placeholder: true,
		Sections: []NarrativeSection{
			{Heading: "Background", Body: "Summary of the parties and the events that gave rise to the matter."},
			{Heading: "Chronology", Body: "Key communications and filings in the order they occurred."},
			{Heading: "Current Posture", Body: "Pending motions, deadlines and open questions for the next phase."},
		},
	}, nil
}
