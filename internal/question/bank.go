package question

import (
	"context"
	"fmt"

	"github.com/skillvet/skillvet/internal/topic"
)

// Bank serves questions from a fixed built-in set. It is the fallback
// source when LLM generation is unavailable, and deterministic for the
// same request and exclusion list.
type Bank struct {
	questions []Question
}

// NewBank creates a Bank with the built-in question set.
func NewBank() *Bank {
	return &Bank{questions: bankQuestions}
}

// Next returns the first unasked bank question matching the request.
// Matching relaxes in stages: exact topic and tier, then topic at any
// tier. Comprehensive requests draw from the comprehensive set first.
func (b *Bank) Next(_ context.Context, req Request) (*Question, error) {
	excluded := make(map[string]bool, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		excluded[id] = true
	}

	if req.Comprehensive {
		if q := b.pick(excluded, func(q Question) bool { return q.Comprehensive }); q != nil {
			return q, nil
		}
	}

	if q := b.pick(excluded, func(q Question) bool {
		return !q.Comprehensive && q.Topic == req.Topic && q.Tier == req.Tier
	}); q != nil {
		return q, nil
	}

	if q := b.pick(excluded, func(q Question) bool {
		return !q.Comprehensive && q.Topic == req.Topic
	}); q != nil {
		return q, nil
	}

	return nil, fmt.Errorf("question bank exhausted for topic %s", req.Topic)
}

func (b *Bank) pick(excluded map[string]bool, match func(Question) bool) *Question {
	for _, q := range b.questions {
		if excluded[q.ID] || !match(q) {
			continue
		}
		out := q
		return &out
	}
	return nil
}

// bankQuestions is the built-in set. Keywords double as the rubric for
// fallback scoring.
var bankQuestions = []Question{
	// Basic formulas.
	{
		ID:       "bank_formulas_01",
		Text:     "Explain what the SUM function does in Excel and walk me through a simple example of how you would use it.",
		Topic:    topic.BasicFormulas,
		Tier:     topic.TierBeginner,
		Keywords: []string{"SUM", "function", "add", "range", "formula", "=SUM"},
	},
	{
		ID:       "bank_formulas_02",
		Text:     "What is the difference between absolute and relative cell references? Give examples of when each matters.",
		Topic:    topic.BasicFormulas,
		Tier:     topic.TierBeginner,
		Keywords: []string{"absolute", "relative", "reference", "$", "A1", "copy", "formula"},
	},
	{
		ID:       "bank_formulas_03",
		Text:     "How does order of operations work inside an Excel formula? Describe a case where missing parentheses change the result.",
		Topic:    topic.BasicFormulas,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"order of operations", "parentheses", "precedence", "multiplication", "addition", "formula"},
	},
	{
		ID:       "bank_formulas_04",
		Text:     "Explain array formulas in Excel. How do you create them and when are they the right tool?",
		Topic:    topic.BasicFormulas,
		Tier:     topic.TierAdvanced,
		Keywords: []string{"array", "formula", "Ctrl+Shift+Enter", "spill", "multiple", "calculations"},
	},

	// Basic functions.
	{
		ID:       "bank_functions_01",
		Text:     "Describe the AVERAGE, MIN, and MAX functions. How would you use them together to summarize a column of sales figures?",
		Topic:    topic.BasicFunctions,
		Tier:     topic.TierBeginner,
		Keywords: []string{"AVERAGE", "MIN", "MAX", "range", "summarize", "function"},
	},
	{
		ID:       "bank_functions_02",
		Text:     "How do you use the IF function? Walk me through an example with a pass/fail condition.",
		Topic:    topic.BasicFunctions,
		Tier:     topic.TierBeginner,
		Keywords: []string{"IF", "condition", "logical test", "true", "false", "nested"},
	},
	{
		ID:       "bank_functions_03",
		Text:     "How do SUMIF and COUNTIF work? Give examples with different kinds of criteria.",
		Topic:    topic.BasicFunctions,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"SUMIF", "COUNTIF", "criteria", "range", "condition", "greater than"},
	},
	{
		ID:       "bank_functions_04",
		Text:     "Explain how you would combine text functions like CONCAT, LEFT, and TRIM to clean up a column of messy names.",
		Topic:    topic.BasicFunctions,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"CONCAT", "LEFT", "TRIM", "text", "clean", "substring"},
	},

	// Lookup functions.
	{
		ID:       "bank_lookup_01",
		Text:     "What does VLOOKUP do and what are its arguments? Describe a situation where you used it.",
		Topic:    topic.LookupFunctions,
		Tier:     topic.TierBeginner,
		Keywords: []string{"VLOOKUP", "lookup", "table", "column", "exact match", "arguments"},
	},
	{
		ID:       "bank_lookup_02",
		Text:     "Explain the difference between VLOOKUP and INDEX-MATCH. When would you reach for each one?",
		Topic:    topic.LookupFunctions,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"VLOOKUP", "INDEX", "MATCH", "lookup", "flexible", "left", "column"},
	},
	{
		ID:       "bank_lookup_03",
		Text:     "How does XLOOKUP improve on the older lookup functions? Cover error handling and search direction.",
		Topic:    topic.LookupFunctions,
		Tier:     topic.TierAdvanced,
		Keywords: []string{"XLOOKUP", "if_not_found", "search mode", "exact match", "reverse", "VLOOKUP"},
	},

	// Data analysis.
	{
		ID:       "bank_data_01",
		Text:     "How do you sort data in Excel? Explain both single-column and multi-column sorting.",
		Topic:    topic.DataAnalysis,
		Tier:     topic.TierBeginner,
		Keywords: []string{"sort", "ascending", "descending", "Data tab", "multiple columns", "criteria"},
	},
	{
		ID:       "bank_data_02",
		Text:     "Describe how you would use Filter and Advanced Filter to analyze a dataset. What does Advanced Filter add?",
		Topic:    topic.DataAnalysis,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"filter", "advanced filter", "criteria", "unique", "copy", "in-place"},
	},
	{
		ID:       "bank_data_03",
		Text:     "Explain how to build a pivot table. What are the key components and what kinds of questions does it answer?",
		Topic:    topic.DataAnalysis,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"pivot table", "rows", "columns", "values", "summarize", "field"},
	},
	{
		ID:       "bank_data_04",
		Text:     "How do you add calculated fields to a pivot table, and when is a calculated field the wrong choice?",
		Topic:    topic.DataAnalysis,
		Tier:     topic.TierAdvanced,
		Keywords: []string{"calculated field", "formula", "pivot table", "aggregation", "source data"},
	},

	// Advanced functions.
	{
		ID:       "bank_advanced_01",
		Text:     "What are the most common Excel errors like #N/A, #REF!, and #VALUE!, and how do you diagnose them?",
		Topic:    topic.AdvancedFunctions,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"#N/A", "#REF!", "#VALUE!", "#DIV/0!", "IFERROR", "troubleshoot"},
	},
	{
		ID:       "bank_advanced_02",
		Text:     "How do you use IFERROR to handle failures gracefully, and what is the risk of wrapping everything in it?",
		Topic:    topic.AdvancedFunctions,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"IFERROR", "error handling", "graceful", "alternative", "mask", "debug"},
	},
	{
		ID:       "bank_advanced_03",
		Text:     "Explain dynamic array functions such as FILTER, SORT, and UNIQUE. How do they change how you structure a workbook?",
		Topic:    topic.AdvancedFunctions,
		Tier:     topic.TierAdvanced,
		Keywords: []string{"FILTER", "SORT", "UNIQUE", "dynamic array", "spill", "range"},
	},

	// Automation.
	{
		ID:       "bank_automation_01",
		Text:     "What is a macro in Excel and how would you record one to automate a repetitive formatting task?",
		Topic:    topic.Automation,
		Tier:     topic.TierIntermediate,
		Keywords: []string{"macro", "record", "VBA", "automate", "repetitive", "Developer tab"},
	},
	{
		ID:       "bank_automation_02",
		Text:     "Describe how you would use Power Query to import and reshape data from multiple files on a schedule.",
		Topic:    topic.Automation,
		Tier:     topic.TierAdvanced,
		Keywords: []string{"Power Query", "import", "transform", "refresh", "append", "source"},
	},

	// Comprehensive challenges.
	{
		ID:            "bank_comprehensive_01",
		Text:          "You receive a monthly export of raw sales data. Walk me through building a repeatable workflow that cleans it, joins in product details, and produces a summary report for management.",
		Topic:         topic.DataAnalysis,
		Tier:          topic.TierAdvanced,
		Comprehensive: true,
		Keywords:      []string{"clean", "lookup", "pivot table", "workflow", "refresh", "summary"},
	},
	{
		ID:            "bank_comprehensive_02",
		Text:          "A workbook you inherited is full of broken formulas and hardcoded values. Describe how you would audit it, fix the errors, and make it maintainable.",
		Topic:         topic.LookupFunctions,
		Tier:          topic.TierAdvanced,
		Comprehensive: true,
		Keywords:      []string{"audit", "trace precedents", "error", "named range", "structure", "document"},
	},
}
