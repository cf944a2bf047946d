package dashboard

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/trialboard/internal/aggregate"
)

// ChartDef describes one chart of a category view: which extractor feeds
// it, where it renders, and how it looks.
type ChartDef struct {
	Slot    string   `yaml:"slot" json:"slot"`
	Title   string   `yaml:"title" json:"title"`
	Kind    string   `yaml:"kind" json:"kind"`
	Field   string   `yaml:"field" json:"field"`
	TopN    int      `yaml:"top_n" json:"top_n,omitempty"`
	Palette []string `yaml:"palette" json:"palette,omitempty"`
}

// View is one category navigation target and its charts.
type View struct {
	Name   string     `yaml:"name" json:"name"`
	Charts []ChartDef `yaml:"charts" json:"charts"`
}

// ViewConfig is the ordered set of category views.
type ViewConfig struct {
	Views []View `yaml:"views" json:"views"`
}

// View returns the named view.
func (c ViewConfig) View(name string) (View, bool) {
	for _, v := range c.Views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}

// Names returns the view names in order.
func (c ViewConfig) Names() []string {
	names := make([]string, len(c.Views))
	for i, v := range c.Views {
		names[i] = v.Name
	}
	return names
}

// Validate checks that every chart references a known field and a unique
// slot.
func (c ViewConfig) Validate() error {
	slots := make(map[string]struct{})
	for _, v := range c.Views {
		for _, ch := range v.Charts {
			if _, ok := aggregate.ByName(ch.Field); !ok {
				return eris.Errorf("views: unknown field %q in view %s", ch.Field, v.Name)
			}
			if ch.Slot == "" {
				return eris.Errorf("views: empty slot in view %s", v.Name)
			}
			if _, dup := slots[ch.Slot]; dup {
				return eris.Errorf("views: duplicate slot %q", ch.Slot)
			}
			slots[ch.Slot] = struct{}{}
		}
	}
	return nil
}

// LoadViews reads a view configuration from a yaml file.
func LoadViews(path string) (ViewConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ViewConfig{}, eris.Wrap(err, "views: read file")
	}
	var cfg ViewConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return ViewConfig{}, eris.Wrap(err, "views: parse yaml")
	}
	if err := cfg.Validate(); err != nil {
		return ViewConfig{}, err
	}
	return cfg, nil
}

// defaultPalette is the chart color cycle used when a chart does not set
// its own.
var defaultPalette = []string{
	"#36a2eb", "#ff6384", "#4bc0c0", "#ff9f40",
	"#9966ff", "#ffcd56", "#c9cbcf", "#2ecc71",
}

// DefaultViews returns the built-in category views, mirroring the
// dashboard navigation: overview, study characteristics, population,
// interventions, outcomes, economics.
func DefaultViews() ViewConfig {
	return ViewConfig{Views: []View{
		{Name: "overview", Charts: []ChartDef{
			{Slot: "overview-design", Title: "Study Design", Kind: "doughnut", Field: "design"},
			{Slot: "overview-year", Title: "Publications per Year", Kind: "bar", Field: "year"},
			{Slot: "overview-geography", Title: "Study Locations", Kind: "bar", Field: "geography", TopN: 10},
		}},
		{Name: "characteristics", Charts: []ChartDef{
			{Slot: "characteristics-design", Title: "Design", Kind: "pie", Field: "design"},
			{Slot: "characteristics-phase", Title: "Trial Phase", Kind: "pie", Field: "phase"},
			{Slot: "characteristics-geography", Title: "Geography", Kind: "bar", Field: "geography"},
		}},
		{Name: "population", Charts: []ChartDef{
			{Slot: "population-condition", Title: "Conditions Studied", Kind: "bar", Field: "condition", TopN: 10},
		}},
		{Name: "interventions", Charts: []ChartDef{
			{Slot: "interventions-type", Title: "Intervention Types", Kind: "pie", Field: "intervention_type"},
			{Slot: "interventions-treatment", Title: "Treatments", Kind: "bar", Field: "treatment", TopN: 10},
		}},
		{Name: "outcomes", Charts: []ChartDef{
			{Slot: "outcomes-primary", Title: "Primary Outcomes", Kind: "bar", Field: "primary_outcome", TopN: 10},
			{Slot: "outcomes-all", Title: "All Reported Outcomes", Kind: "bar", Field: "outcome", TopN: 15},
		}},
		{Name: "economics", Charts: []ChartDef{
			{Slot: "economics-cost-type", Title: "Direct Medical Cost Types", Kind: "pie", Field: "cost_type"},
		}},
	}}
}
