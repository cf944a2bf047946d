package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Display sentinels. Used as fallbacks in cards and tables; aggregation
// never emits a bucket for either of them.
const (
	Unknown = "Unknown"
	NA      = "N/A"
)

// Num is a tolerant numeric field. Source documents carry numbers as JSON
// numbers or as strings ("1,200", "$500"); anything else decodes as absent.
// Absent values read as zero but stay distinguishable from a real zero.
type Num struct {
	Value float64
	Valid bool
}

// UnmarshalJSON never fails: a value that cannot be coerced to a number is
// recorded as absent.
func (n *Num) UnmarshalJSON(b []byte) error {
	*n = Num{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
	} else {
		s = string(b)
	}

	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n.Value = f
	n.Valid = true
	return nil
}

// MarshalJSON writes the numeric value, or null when absent.
func (n Num) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Int returns the value truncated to an integer, zero when absent.
func (n Num) Int() int {
	return int(n.Value)
}

// Characteristics holds the study-level descriptive fields. Every field is
// optional in the source documents.
type Characteristics struct {
	Title                  string `json:"title"`
	PublicationYear        Num    `json:"publicationYear"`
	Design                 string `json:"design"`
	SampleSize             Num    `json:"sampleSize"`
	GeographicLocation     string `json:"geographicLocation"`
	FollowUpDurationMonths Num    `json:"followUpDurationMonths"`
	Phase                  string `json:"phase"`
}

// Population describes the studied population. In the wild it arrives
// either as a structured object or as a JSON-encoded string; the shape is
// resolved here, once, at decode time. An unparsable payload leaves the
// struct absent (Valid false) rather than failing the record.
type Population struct {
	Condition           string `json:"condition"`
	SexRatioMale        Num    `json:"sexRatioMale"`
	TargetPopulationAge string `json:"targetPopulationAge"`
	AgeRange            string `json:"ageRange"`
	Name                string `json:"name"`

	Valid bool `json:"-"`
}

func (p *Population) UnmarshalJSON(b []byte) error {
	*p = Population{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '"' {
		var encoded string
		if err := json.Unmarshal(b, &encoded); err != nil {
			return nil
		}
		b = []byte(encoded)
	}

	type alias Population
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return nil
	}
	*p = Population(a)
	p.Valid = true
	return nil
}

// Intervention is one arm's treatment description.
type Intervention struct {
	Type      string `json:"type"`
	Treatment string `json:"treatment"`
	Dose      string `json:"dose"`
}

// Interventions tolerates both an array and a bare singleton object.
type Interventions []Intervention

func (iv *Interventions) UnmarshalJSON(b []byte) error {
	*iv = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '{' {
		var one Intervention
		if err := json.Unmarshal(b, &one); err != nil {
			return nil
		}
		*iv = Interventions{one}
		return nil
	}

	var many []Intervention
	if err := json.Unmarshal(b, &many); err != nil {
		return nil
	}
	*iv = many
	return nil
}

// Outcome is one entry of the structured outcomes list.
type Outcome struct {
	Name              string   `json:"name"`
	Primary           bool     `json:"primary"`
	TimePoint         string   `json:"timePoint"`
	SecondaryOutcomes []string `json:"secondaryOutcomes"`
}

// Outcomes is a discriminated union over the two outcome shapes found in
// source documents: an ordered list of Outcome entries, or a legacy
// {"primaryOutcome": "..."} mapping. Downstream code goes through the
// accessors and never re-checks the shape.
type Outcomes struct {
	List   []Outcome
	Legacy string
	IsList bool
}

func (o *Outcomes) UnmarshalJSON(b []byte) error {
	*o = Outcomes{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '[' {
		var list []Outcome
		if err := json.Unmarshal(b, &list); err != nil {
			return nil
		}
		o.List = list
		o.IsList = true
		return nil
	}

	var legacy struct {
		PrimaryOutcome string `json:"primaryOutcome"`
	}
	if err := json.Unmarshal(b, &legacy); err != nil {
		return nil
	}
	o.Legacy = legacy.PrimaryOutcome
	return nil
}

// MarshalJSON round-trips whichever shape was decoded.
func (o Outcomes) MarshalJSON() ([]byte, error) {
	if o.IsList {
		return json.Marshal(o.List)
	}
	if o.Legacy != "" {
		return json.Marshal(struct {
			PrimaryOutcome string `json:"primaryOutcome"`
		}{o.Legacy})
	}
	return []byte("null"), nil
}

// Primary returns the record's primary outcome name: the first entry
// flagged primary, else the first entry, else the legacy mapping's value.
// NA when nothing matches.
func (o Outcomes) Primary() string {
	if o.IsList {
		for _, out := range o.List {
			if out.Primary && out.Name != "" {
				return out.Name
			}
		}
		if len(o.List) > 0 && o.List[0].Name != "" {
			return o.List[0].Name
		}
		return NA
	}
	if o.Legacy != "" {
		return o.Legacy
	}
	return NA
}

// Names returns every outcome name carried by the record: each list
// entry's name plus its secondary outcome names, or the legacy primary
// outcome. Empty strings are skipped.
func (o Outcomes) Names() []string {
	var names []string
	if o.IsList {
		for _, out := range o.List {
			if out.Name != "" {
				names = append(names, out.Name)
			}
			for _, sec := range out.SecondaryOutcomes {
				if sec != "" {
					names = append(names, sec)
				}
			}
		}
		return names
	}
	if o.Legacy != "" {
		names = append(names, o.Legacy)
	}
	return names
}

// ModelParameters holds the economic model inputs.
type ModelParameters struct {
	ICER         Num    `json:"ICER"`
	WTPThreshold Num    `json:"WTPThreshold"`
	CurrencyCode string `json:"currencyCode"`
}

// ICERAnalysis holds the reported incremental cost-effectiveness result.
type ICERAnalysis struct {
	ICERValue    Num    `json:"icerValue"`
	CurrencyCode string `json:"currencyCode"`
}

// DirectCost is one direct-medical-cost line item.
type DirectCost struct {
	CostType string `json:"costType"`
	Value    Num    `json:"value"`
}

// Economics holds the optional health-economic section of a study.
type Economics struct {
	ModelParameters    *ModelParameters `json:"modelParameters"`
	ICERAnalysis       *ICERAnalysis    `json:"icerAnalysis"`
	DirectMedicalCosts []DirectCost     `json:"directMedicalCosts"`
}

// RawRecord mirrors one study JSON document as shipped by the data source.
// Unknown extra fields are ignored; polymorphic fields resolve their shape
// during decoding and degrade to absent on malformed content.
type RawRecord struct {
	StudyID         string          `json:"studyId"`
	AltID           string          `json:"id"`
	Characteristics Characteristics `json:"characteristics"`
	Population      Population      `json:"population"`
	Interventions   Interventions   `json:"interventions"`
	Outcomes        Outcomes        `json:"outcomes"`
	Economics       *Economics      `json:"economicData"`
}

// StudyRecord is the canonical unit the dashboard works with. IDs are
// unique across a loaded set.
type StudyRecord struct {
	ID              string          `json:"id"`
	Characteristics Characteristics `json:"characteristics"`
	Population      Population      `json:"population"`
	Interventions   Interventions   `json:"interventions"`
	Outcomes        Outcomes        `json:"outcomes"`
	Economics       *Economics      `json:"economicData,omitempty"`
}

// Title returns the study title, NA when absent.
func (r StudyRecord) Title() string {
	if r.Characteristics.Title == "" {
		return NA
	}
	return r.Characteristics.Title
}

// Year returns the publication year, zero when absent.
func (r StudyRecord) Year() int {
	return r.Characteristics.PublicationYear.Int()
}
