package sessions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Model payloads are only checked for JSON syntax. The helpers below fill the
// typed results from the generic map, taking whatever shape each field has.

func analysisFromMap(m map[string]any) AnalysisResult {
	return AnalysisResult{
		OverallScore:       asInt(m["overallScore"]),
		Selected:           asBool(m["selected"]),
		Strengths:          asStrings(m["strengths"]),
		MissingSkills:      asStrings(m["missingSkills"]),
		Reasoning:          asString(m["reasoning"]),
		DetailedWeaknesses: weaknessesFrom(m["detailedWeaknesses"]),
	}
}

func weaknessesFrom(v any) []Weakness {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		items = []any{t}
	}
	out := make([]Weakness, 0, len(items))
	for _, item := range items {
		switch w := item.(type) {
		case map[string]any:
			out = append(out, Weakness{
				Skill:       asString(w["skill"]),
				Score:       asInt(w["score"]),
				Detail:      asString(w["detail"]),
				Suggestions: asStrings(w["suggestions"]),
				Example:     asString(w["example"]),
			})
		case string:
			if w != "" {
				out = append(out, Weakness{Skill: w})
			}
		}
	}
	return out
}

func planFromMap(m map[string]any) ImprovementPlan {
	plan := make(ImprovementPlan, len(m))
	for area, v := range m {
		switch t := v.(type) {
		case map[string]any:
			plan[area] = ImprovementArea{
				Description: asString(t["description"]),
				Specific:    asStrings(t["specific"]),
			}
		case []any:
			plan[area] = ImprovementArea{Specific: asStrings(t)}
		default:
			plan[area] = ImprovementArea{Description: asString(t), Specific: []string{}}
		}
	}
	return plan
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// asInt rounds numeric values and parses numeric strings such as "82" or "82%".
func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t))
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(t), "%")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return int(math.Round(f))
	default:
		return 0
	}
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return false
	}
}

// asStrings accepts a list or a single scalar, dropping empty entries.
func asStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := asString(t); s != "" {
			return []string{s}
		}
		return []string{}
	}
}
