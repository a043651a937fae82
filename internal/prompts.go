package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/kaptinlin/jsonschema"
	"gopkg.in/yaml.v3"
)

// Prompt is a named template tagged with the goal it produces
type Prompt struct {
	ID           string    `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string    `json:"name" yaml:"name"`
	Goal         Goal      `json:"goal" yaml:"goal"`
	Template     string    `json:"template" yaml:"template"`
	SystemPrompt string    `json:"systemPrompt,omitempty" yaml:"systemPrompt,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Render substitutes {start_date} and {end_date} with the range bounds
func (p Prompt) Render(r DateRange) string {
	return strings.NewReplacer("{start_date}", r.Start, "{end_date}", r.End).Replace(p.Template)
}

// promptCatalogSchema validates catalog files before they are decoded
const promptCatalogSchema = `{
  "type": "object",
  "required": ["prompts"],
  "properties": {
    "prompts": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "template"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string", "minLength": 1},
          "goal": {"type": "string"},
          "template": {"type": "string"},
          "systemPrompt": {"type": "string"},
          "description": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

type promptCatalogFile struct {
	Prompts []Prompt `yaml:"prompts"`
}

// PromptCatalog holds named templates, unique by name
type PromptCatalog struct {
	prompts map[string]Prompt
}

// NewPromptCatalog builds a catalog; later prompts replace earlier ones by name
func NewPromptCatalog(prompts ...Prompt) *PromptCatalog {
	c := &PromptCatalog{prompts: make(map[string]Prompt)}
	c.Merge(prompts)
	return c
}

// DefaultPromptCatalog returns one built-in prompt per goal
func DefaultPromptCatalog() *PromptCatalog {
	return NewPromptCatalog(
		Prompt{Name: "Time Entries", Goal: GoalTimeEntries, Template: "Generate billable time entries for the selected evidence between {start_date} and {end_date}.", Description: "Synthesize billing rows from selected communications", Tags: []string{"billing"}},
		Prompt{Name: "Project Timeline", Goal: GoalProjectTimeline, Template: "Build a chronological timeline of the selected evidence from {start_date} to {end_date}.", Description: "Day-by-day chronology", Tags: []string{"timeline"}},
		Prompt{Name: "Evidence Summary", Goal: GoalEvidenceSummary, Template: "Summarize the selected evidence.", Description: "Counts, span and participants", Tags: []string{"summary"}},
		Prompt{Name: "Key Themes", Goal: GoalKeyThemes, Template: "Identify the key themes in the selected evidence.", Description: "Recurring subjects", Tags: []string{"analysis"}},
		Prompt{Name: "Case Narrative", Goal: GoalCaseNarrative, Template: "Write a narrative of the case based on the selected evidence.", Description: "Prose account of the matter", Tags: []string{"analysis"}},
	)
}

// LoadPromptCatalog reads a YAML catalog, validating it against the catalog schema
func LoadPromptCatalog(path string) (*PromptCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Source: "prompts", Key: path, Err: err}
	}
	return ParsePromptCatalog(path, data)
}

// ParsePromptCatalog decodes and validates catalog YAML
func ParsePromptCatalog(source string, data []byte) (*PromptCatalog, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, &ParseError{Source: "prompts", Key: source, Err: err}
	}
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return nil, &ParseError{Source: "prompts", Key: source, Err: err}
	}
	if err := validatePromptCatalog(asJSON); err != nil {
		return nil, &ParseError{Source: "prompts", Key: source, Err: err}
	}

	var file promptCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ParseError{Source: "prompts", Key: source, Err: err}
	}
	return NewPromptCatalog(file.Prompts...), nil
}

func validatePromptCatalog(data []byte) error {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile([]byte(promptCatalogSchema))
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}

// Merge adds prompts, replacing any with the same name. Prompts without
// a goal default to time_entries.
func (c *PromptCatalog) Merge(prompts []Prompt) {
	for _, p := range prompts {
		if p.Goal == "" {
			p.Goal = GoalTimeEntries
		}
		c.prompts[p.Name] = p
	}
}

// Get looks up a prompt by name, case-insensitively
func (c *PromptCatalog) Get(name string) (Prompt, bool) {
	if p, ok := c.prompts[name]; ok {
		return p, true
	}
	for key, p := range c.prompts {
		if strings.EqualFold(key, name) {
			return p, true
		}
	}
	return Prompt{}, false
}

// ForGoal returns the first prompt (by name) carrying the goal
func (c *PromptCatalog) ForGoal(goal Goal) (Prompt, bool) {
	for _, p := range c.List() {
		if p.Goal == goal {
			return p, true
		}
	}
	return Prompt{}, false
}

// List returns prompts sorted by name
func (c *PromptCatalog) List() []Prompt {
	out := make([]Prompt, 0, len(c.prompts))
	for _, p := range c.prompts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of prompts
func (c *PromptCatalog) Len() int {
	return len(c.prompts)
}
