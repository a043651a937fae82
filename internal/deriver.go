package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Goal selects which artifact-generation algorithm runs
type Goal string

const (
	GoalTimeEntries     Goal = "time_entries"
	GoalProjectTimeline Goal = "project_timeline"
	GoalEvidenceSummary Goal = "evidence_summary"
	GoalKeyThemes       Goal = "key_themes"
	GoalCaseNarrative   Goal = "case_narrative"
	GoalCustom          Goal = "custom"
)

// Goals lists the known goals
var Goals = []Goal{
	GoalTimeEntries,
	GoalProjectTimeline,
	GoalEvidenceSummary,
	GoalKeyThemes,
	GoalCaseNarrative,
	GoalCustom,
}

// ParseGoal maps a goal tag onto a known goal; unmatched tags are custom
func ParseGoal(tag string) Goal {
	g := Goal(strings.ToLower(strings.TrimSpace(tag)))
	for _, known := range Goals {
		if g == known {
			return g
		}
	}
	return GoalCustom
}

// Payload is one variant of the artifact union
type Payload interface {
	Goal() Goal
}

// Artifact is the derived output of a run
type Artifact struct {
	Goal    Goal    `json:"goal" yaml:"goal"`
	Payload Payload `json:"payload" yaml:"payload"`
}

// DecodeArtifact decodes a saved artifact, restoring the payload variant
// from its goal
func DecodeArtifact(data []byte) (*Artifact, error) {
	var raw struct {
		Goal    Goal            `json:"goal"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Source: "artifact", Err: err}
	}

	goal := ParseGoal(string(raw.Goal))
	var payload Payload
	switch goal {
	case GoalTimeEntries:
		payload = &TimeEntries{}
	case GoalProjectTimeline:
		payload = &Timeline{}
	case GoalEvidenceSummary:
		payload = &Summary{}
	case GoalKeyThemes:
		payload = &KeyThemes{}
	case GoalCaseNarrative:
		payload = &CaseNarrative{}
	default:
		payload = &CustomPayload{}
	}
	if len(raw.Payload) > 0 {
		if err := json.Unmarshal(raw.Payload, payload); err != nil {
			return nil, &ParseError{Source: "artifact", Key: string(goal), Err: err}
		}
	}
	return &Artifact{Goal: goal, Payload: payload}, nil
}

// BillingRule is the duration heuristic for one category
type BillingRule struct {
	Category         Category
	HoursPerItem     float64
	UseCallDuration  bool
	ActivityCategory string
	Description      string
}

// BillingPolicy fixes the hourly rate and the per-category rules, in row order
type BillingPolicy struct {
	HourlyRate float64
	Rules      []BillingRule
}

// DefaultHourlyRate is the rate applied to synthesized time entries
const DefaultHourlyRate = 475.0

// DefaultBillingPolicy returns the standard duration heuristics
func DefaultBillingPolicy() BillingPolicy {
	return BillingPolicy{
		HourlyRate: DefaultHourlyRate,
		Rules: []BillingRule{
			{Category: CategoryEmail, HoursPerItem: 0.1, ActivityCategory: "client_communication", Description: "Review and respond to %d email(s)"},
			{Category: CategorySMS, HoursPerItem: 0.05, ActivityCategory: "client_communication", Description: "Review and respond to %d text message(s)"},
			{Category: CategoryPhoneCall, UseCallDuration: true, ActivityCategory: "client_communication", Description: "Telephone conference(s) (%d call(s))"},
			{Category: CategoryDocketEntry, HoursPerItem: 0.3, ActivityCategory: "legal_research", Description: "Review %d docket entr(ies) and related filings"},
		},
	}
}

// DeriveRequest is the input to a single derivation
type DeriveRequest struct {
	Goal     Goal
	Evidence EvidenceCollection
	// Now stamps time entry rows; derivation never reads the clock
	Now time.Time
	// Input is carried through untouched for custom goals
	Input map[string]any
}

// Deriver maps a selection snapshot and goal to an artifact
type Deriver struct {
	policy   BillingPolicy
	analyzer Analyzer
}

// NewDeriver creates a Deriver. A nil analyzer uses the placeholder one.
func NewDeriver(policy BillingPolicy, analyzer Analyzer) *Deriver {
	if analyzer == nil {
		analyzer = NewPlaceholderAnalyzer()
	}
	return &Deriver{policy: policy, analyzer: analyzer}
}

// Derive runs the goal's algorithm. The only validation is that at least
// one item is selected.
func (d *Deriver) Derive(ctx context.Context, req DeriveRequest) (*Artifact, error) {
	goal := ParseGoal(string(req.Goal))
	if req.Evidence.Total() == 0 {
		return nil, &InsufficientSelectionError{Goal: goal}
	}

	var (
		payload Payload
		err     error
	)
	switch goal {
	case GoalTimeEntries:
		payload = DeriveTimeEntries(req.Evidence, d.policy, req.Now)
	case GoalProjectTimeline:
		payload = DeriveTimeline(req.Evidence)
	case GoalEvidenceSummary:
		payload = DeriveSummary(req.Evidence)
	case GoalKeyThemes:
		payload, err = d.analyzer.KeyThemes(ctx, req.Evidence)
	case GoalCaseNarrative:
		payload, err = d.analyzer.CaseNarrative(ctx, req.Evidence)
	default:
		payload = &CustomPayload{Requested: string(req.Goal), Content: req.Input}
	}
	if err != nil {
		return nil, fmt.Errorf("%s analysis failed: %w", goal, err)
	}

	return &Artifact{Goal: goal, Payload: payload}, nil
}

// TimeEntryRow is one synthesized billing line
type TimeEntryRow struct {
	ID               string   `json:"id" yaml:"id"`
	Date             string   `json:"date" yaml:"date"`
	Category         Category `json:"category" yaml:"category"`
	ActivityCategory string   `json:"activity_category" yaml:"activity_category"`
	Description      string   `json:"description" yaml:"description"`
	Hours            float64  `json:"hours" yaml:"hours"`
	Rate             float64  `json:"rate" yaml:"rate"`
	Billable         float64  `json:"billable" yaml:"billable"`
	ItemCount        int      `json:"item_count" yaml:"item_count"`
	EvidenceIDs      []string `json:"evidence_ids" yaml:"evidence_ids"`
}

// TimeEntries is the time_entries payload
type TimeEntries struct {
	Rows       []TimeEntryRow `json:"rows" yaml:"rows"`
	TotalHours float64        `json:"total_hours" yaml:"total_hours"`
	Total      float64        `json:"total_billable" yaml:"total_billable"`
}

func (*TimeEntries) Goal() Goal { return GoalTimeEntries }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// DeriveTimeEntries emits at most one row per non-empty billable category.
// Hours are rounded to one decimal before the billable amount is computed
// from the rounded value and rounded to cents.
func DeriveTimeEntries(evidence EvidenceCollection, policy BillingPolicy, now time.Time) *TimeEntries {
	out := &TimeEntries{Rows: []TimeEntryRow{}}
	now = now.UTC()
	day := now.Format(dayLayout)

	for _, rule := range policy.Rules {
		records := evidence[rule.Category]
		if len(records) == 0 {
			continue
		}

		var hours float64
		if rule.UseCallDuration {
			secs := 0
			for _, r := range records {
				secs += r.DurationSeconds
			}
			hours = float64(secs) / 3600
		} else {
			hours = rule.HoursPerItem * float64(len(records))
		}
		hours = round1(hours)

		row := TimeEntryRow{
			ID:               fmt.Sprintf("te_%s_%s", now.Format("20060102"), rule.Category),
			Date:             day,
			Category:         rule.Category,
			ActivityCategory: rule.ActivityCategory,
			Description:      fmt.Sprintf(rule.Description, len(records)),
			Hours:            hours,
			Rate:             policy.HourlyRate,
			Billable:         round2(hours * policy.HourlyRate),
			ItemCount:        len(records),
			EvidenceIDs:      evidence.IDs(rule.Category),
		}
		out.Rows = append(out.Rows, row)
		out.TotalHours += row.Hours
		out.Total += row.Billable
	}

	out.TotalHours = round1(out.TotalHours)
	out.Total = round2(out.Total)
	return out
}

// TimelineItem is one record placed on the timeline
type TimelineItem struct {
	Category  Category       `json:"category" yaml:"category"`
	ID        string         `json:"id" yaml:"id"`
	Timestamp string         `json:"timestamp" yaml:"timestamp"`
	Title     string         `json:"title" yaml:"title"`
	Record    EvidenceRecord `json:"record" yaml:"record"`
}

// TimelineDay groups the items of one calendar day
type TimelineDay struct {
	Date  string         `json:"date" yaml:"date"`
	Items []TimelineItem `json:"items" yaml:"items"`
}

// Timeline is the project_timeline payload
type Timeline struct {
	Days       []TimelineDay `json:"days" yaml:"days"`
	TotalItems int           `json:"total_items" yaml:"total_items"`
}

func (*Timeline) Goal() Goal { return GoalProjectTimeline }

// flatten lists selected records in category precedence order
func flatten(evidence EvidenceCollection) []EvidenceRecord {
	var all []EvidenceRecord
	for _, cat := range Categories {
		all = append(all, evidence[cat]...)
	}
	return all
}

// sortChronological stable-sorts by resolved timestamp; records without
// one sort last, keeping their flatten order.
func sortChronological(records []EvidenceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, oki := records[i].Time()
		tj, okj := records[j].Time()
		if !oki || !okj {
			return oki && !okj
		}
		return ti.Before(tj)
	})
}

// DeriveTimeline sorts the selection chronologically and buckets it by UTC
// day, so day buckets follow the same order as the instants inside them.
func DeriveTimeline(evidence EvidenceCollection) *Timeline {
	records := flatten(evidence)
	sortChronological(records)

	normalizer := NewNormalizer()
	out := &Timeline{Days: []TimelineDay{}, TotalItems: len(records)}
	for _, r := range records {
		day := r.Day()
		if n := len(out.Days); n == 0 || out.Days[n-1].Date != day {
			out.Days = append(out.Days, TimelineDay{Date: day})
		}
		last := &out.Days[len(out.Days)-1]
		last.Items = append(last.Items, TimelineItem{
			Category:  r.Category,
			ID:        r.ID,
			Timestamp: r.rawTimestamp(),
			Title:     normalizer.Title(r),
			Record:    r,
		})
	}
	return out
}

// CategoryCounts holds per-category item counts
type CategoryCounts struct {
	Emails        int `json:"emails" yaml:"emails"`
	SMS           int `json:"sms" yaml:"sms"`
	PhoneCalls    int `json:"phone_calls" yaml:"phone_calls"`
	DocketEntries int `json:"docket_entries" yaml:"docket_entries"`
	TimeEntries   int `json:"time_entries" yaml:"time_entries"`
}

// Summary is the evidence_summary payload
type Summary struct {
	TotalItems   int            `json:"total_items" yaml:"total_items"`
	Counts       CategoryCounts `json:"counts" yaml:"counts"`
	Earliest     *time.Time     `json:"earliest,omitempty" yaml:"earliest,omitempty"`
	Latest       *time.Time     `json:"latest,omitempty" yaml:"latest,omitempty"`
	Participants []string       `json:"participants" yaml:"participants"`
}

func (*Summary) Goal() Goal { return GoalEvidenceSummary }

// DeriveSummary counts the selection, finds its time span and collects
// email participants. Participant values are trimmed but otherwise kept
// as written.
func DeriveSummary(evidence EvidenceCollection) *Summary {
	out := &Summary{
		Counts: CategoryCounts{
			Emails:        len(evidence[CategoryEmail]),
			SMS:           len(evidence[CategorySMS]),
			PhoneCalls:    len(evidence[CategoryPhoneCall]),
			DocketEntries: len(evidence[CategoryDocketEntry]),
			TimeEntries:   len(evidence[CategoryTimeEntry]),
		},
		Participants: []string{},
	}
	c := out.Counts
	out.TotalItems = c.Emails + c.SMS + c.PhoneCalls + c.DocketEntries + c.TimeEntries

	for _, r := range flatten(evidence) {
		t, ok := r.Time()
		if !ok {
			continue
		}
		if out.Earliest == nil || t.Before(*out.Earliest) {
			earliest := t
			out.Earliest = &earliest
		}
		if out.Latest == nil || t.After(*out.Latest) {
			latest := t
			out.Latest = &latest
		}
	}

	seen := make(map[string]struct{})
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out.Participants = append(out.Participants, v)
	}
	for _, r := range evidence[CategoryEmail] {
		add(r.From)
		for _, to := range strings.Split(r.To, ",") {
			add(to)
		}
	}

	return out
}

// CustomPayload carries caller-supplied content without a defined shape
type CustomPayload struct {
	Requested string         `json:"requested_goal" yaml:"requested_goal"`
	Content   map[string]any `json:"content,omitempty" yaml:"content,omitempty"`
}

func (*CustomPayload) Goal() Goal { return GoalCustom }
