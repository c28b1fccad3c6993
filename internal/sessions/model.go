package sessions

// AnalysisResult is the parsed score response.
type AnalysisResult struct {
	OverallScore       int        `json:"overallScore"`
	Selected           bool       `json:"selected"`
	Strengths          []string   `json:"strengths"`
	MissingSkills      []string   `json:"missingSkills"`
	Reasoning          string     `json:"reasoning"`
	DetailedWeaknesses []Weakness `json:"detailedWeaknesses"`
}

// MeetsCutoff reports whether the overall score reaches cutoff.
func (r AnalysisResult) MeetsCutoff(cutoff int) bool {
	return r.OverallScore >= cutoff
}

// Weakness is one skill gap identified by an analysis.
type Weakness struct {
	Skill       string   `json:"skill"`
	Score       int      `json:"score"`
	Detail      string   `json:"detail"`
	Suggestions []string `json:"suggestions"`
	Example     string   `json:"example"`
}

// InterviewQuestion is one generated question and its category.
type InterviewQuestion struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// ImprovementArea holds the suggestions for one resume area.
type ImprovementArea struct {
	Description string   `json:"description"`
	Specific    []string `json:"specific"`
}

// ImprovementPlan maps area names to suggestions. Keys come straight from the
// model response.
type ImprovementPlan map[string]ImprovementArea

// State is the lifecycle position of a Session.
type State int

const (
	StateEmpty State = iota
	StateReady
	StateAnalyzed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateAnalyzed:
		return "analyzed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
