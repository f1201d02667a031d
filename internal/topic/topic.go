package topic

// Topic represents one of the six fixed Excel skill categories assessed
// in an interview.
type Topic string

const (
	BasicFormulas     Topic = "basic-formulas"
	BasicFunctions    Topic = "basic-functions"
	LookupFunctions   Topic = "lookup-functions"
	DataAnalysis      Topic = "data-analysis"
	AdvancedFunctions Topic = "advanced-functions"
	Automation        Topic = "automation"
)

// All returns every topic in declaration order. The order is fixed and
// used as the tiebreaker wherever topics compare equal.
func All() []Topic {
	return []Topic{
		BasicFormulas,
		BasicFunctions,
		LookupFunctions,
		DataAnalysis,
		AdvancedFunctions,
		Automation,
	}
}

// DeclarationIndex returns the position of t in declaration order,
// or len(All()) for an unknown topic.
func DeclarationIndex(t Topic) int {
	for i, known := range All() {
		if known == t {
			return i
		}
	}
	return len(All())
}

// Valid reports whether t is one of the six known topics.
func Valid(t Topic) bool {
	return DeclarationIndex(t) < len(All())
}

// Baseline reports whether t is a baseline-establishing topic, favored
// during the Opening phase.
func Baseline(t Topic) bool {
	return t == BasicFormulas || t == BasicFunctions
}

// DisplayName returns a human-readable name for a topic.
func DisplayName(t Topic) string {
	switch t {
	case BasicFormulas:
		return "Basic Formulas"
	case BasicFunctions:
		return "Basic Functions"
	case LookupFunctions:
		return "Lookup Functions"
	case DataAnalysis:
		return "Data Analysis"
	case AdvancedFunctions:
		return "Advanced Functions"
	case Automation:
		return "Automation"
	default:
		return string(t)
	}
}

// RubricKeywords returns the terms the local fallback evaluator looks for
// in an answer on the given topic.
func RubricKeywords(t Topic) []string {
	switch t {
	case BasicFormulas:
		return []string{"formula", "cell", "reference", "absolute", "relative", "SUM", "AVERAGE"}
	case BasicFunctions:
		return []string{"IF", "COUNT", "COUNTIF", "SUMIF", "ROUND", "CONCAT", "function"}
	case LookupFunctions:
		return []string{"VLOOKUP", "HLOOKUP", "XLOOKUP", "INDEX", "MATCH", "lookup", "exact match"}
	case DataAnalysis:
		return []string{"pivot table", "filter", "sort", "group", "trend", "summarize", "analysis"}
	case AdvancedFunctions:
		return []string{"array", "LAMBDA", "LET", "SUMPRODUCT", "dynamic", "IFERROR", "nested"}
	case Automation:
		return []string{"macro", "VBA", "Power Query", "script", "automate", "record", "refresh"}
	default:
		return nil
	}
}
