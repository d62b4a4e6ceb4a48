// Package onboarding defines the first-run questionnaire and derives a risk
// profile and starting plan from its answers.
package onboarding

import (
	"fmt"
	"strings"
)

type Experience string

const (
	ExperienceBeginner    Experience = "Complete beginner"
	ExperienceFewMonths   Experience = "A few months"
	ExperienceOverYear    Experience = "1+ year"
	ExperienceExperienced Experience = "Experienced (but need discipline)"
)

type CapitalBracket string

const (
	CapitalUnder500    CapitalBracket = "Under $500"
	Capital500To2000   CapitalBracket = "$500 - $2,000"
	Capital2000To5000  CapitalBracket = "$2,000 - $5,000"
	Capital5000To20000 CapitalBracket = "$5,000 - $20,000"
	CapitalOver20000   CapitalBracket = "$20,000+"
)

type MonthlyBudget string

const (
	MonthlyNone       MonthlyBudget = "$0 — no extra income"
	MonthlyUnder500   MonthlyBudget = "Under $500"
	Monthly500To1000  MonthlyBudget = "$500 - $1,000"
	Monthly1000To2000 MonthlyBudget = "$1,000 - $2,000"
	MonthlyOver2000   MonthlyBudget = "$2,000+"
)

type ExpenseBracket string

const (
	ExpensesUnder500   ExpenseBracket = "Under $500"
	Expenses500To1000  ExpenseBracket = "$500 - $1,000"
	Expenses1000To2000 ExpenseBracket = "$1,000 - $2,000"
	Expenses2000To4000 ExpenseBracket = "$2,000 - $4,000"
	ExpensesOver4000   ExpenseBracket = "$4,000+"
)

type RiskTolerance string

const (
	RiskConservative RiskTolerance = "Conservative — protect capital above all"
	RiskModerate     RiskTolerance = "Moderate — balanced growth and safety"
	RiskAggressive   RiskTolerance = "Aggressive — willing to take bigger risks"
)

type LeverageExperience string

const (
	LeverageNever      LeverageExperience = "Never"
	LeverageLiquidated LeverageExperience = "Yes, and I've been liquidated"
	LeverageProfitable LeverageExperience = "Yes, profitably"
	LeverageUnfamiliar LeverageExperience = "I don't know what leverage is"
)

type Goal string

const (
	Goal5kTo10k   Goal = "$5,000 - $10,000"
	Goal10kTo25k  Goal = "$10,000 - $25,000"
	Goal25kTo50k  Goal = "$25,000 - $50,000"
	Goal50kTo100k Goal = "$50,000 - $100,000"
	GoalOver100k  Goal = "$100,000+"
)

// Answers is a completed questionnaire.
type Answers struct {
	Name       string             `json:"name"`
	Experience Experience         `json:"experience"`
	Capital    CapitalBracket     `json:"capital"`
	Monthly    MonthlyBudget      `json:"monthly"`
	Expenses   ExpenseBracket     `json:"expenses"`
	Risk       RiskTolerance      `json:"risk"`
	Leverage   LeverageExperience `json:"leverage"`
	Goal       Goal               `json:"goal"`
}

// QuestionType tells the client how to render a question.
type QuestionType string

const (
	QuestionText   QuestionType = "text"
	QuestionSelect QuestionType = "select"
)

// Question is one step of the questionnaire.
type Question struct {
	Field       string       `json:"field"`
	Prompt      string       `json:"prompt"`
	Type        QuestionType `json:"type"`
	Placeholder string       `json:"placeholder,omitempty"`
	Options     []string     `json:"options,omitempty"`
}

// Questions is the questionnaire in the order it is asked.
var Questions = []Question{
	{Field: "name", Prompt: "What should we call you?", Type: QuestionText, Placeholder: "Your name or alias"},
	{Field: "experience", Prompt: "How much crypto trading experience do you have?", Type: QuestionSelect, Options: options(
		ExperienceBeginner, ExperienceFewMonths, ExperienceOverYear, ExperienceExperienced)},
	{Field: "capital", Prompt: "How much capital are you starting with?", Type: QuestionSelect, Options: options(
		CapitalUnder500, Capital500To2000, Capital2000To5000, Capital5000To20000, CapitalOver20000)},
	{Field: "monthly", Prompt: "How much can you add monthly from income?", Type: QuestionSelect, Options: options(
		MonthlyNone, MonthlyUnder500, Monthly500To1000, Monthly1000To2000, MonthlyOver2000)},
	{Field: "expenses", Prompt: "What are your monthly living expenses?", Type: QuestionSelect, Options: options(
		ExpensesUnder500, Expenses500To1000, Expenses1000To2000, Expenses2000To4000, ExpensesOver4000)},
	{Field: "risk", Prompt: "What's your risk tolerance?", Type: QuestionSelect, Options: options(
		RiskConservative, RiskModerate, RiskAggressive)},
	{Field: "leverage", Prompt: "Have you used leverage (futures) before?", Type: QuestionSelect, Options: options(
		LeverageNever, LeverageLiquidated, LeverageProfitable, LeverageUnfamiliar)},
	{Field: "goal", Prompt: "What's your 12-month portfolio goal?", Type: QuestionSelect, Options: options(
		Goal5kTo10k, Goal10kTo25k, Goal25kTo50k, Goal50kTo100k, GoalOver100k)},
}

func options[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// InvalidAnswerError reports a missing or unknown answer.
type InvalidAnswerError struct {
	Field string
	Value string
}

func (e *InvalidAnswerError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %q is not one of the offered options", e.Field, e.Value)
}

// Validate checks that every question has an answer from its option list.
func (a Answers) Validate() error {
	given := map[string]string{
		"experience": string(a.Experience),
		"capital":    string(a.Capital),
		"monthly":    string(a.Monthly),
		"expenses":   string(a.Expenses),
		"risk":       string(a.Risk),
		"leverage":   string(a.Leverage),
		"goal":       string(a.Goal),
	}
	for _, q := range Questions {
		if q.Type == QuestionText {
			if strings.TrimSpace(a.Name) == "" {
				return &InvalidAnswerError{Field: q.Field}
			}
			continue
		}
		v := given[q.Field]
		if v == "" {
			return &InvalidAnswerError{Field: q.Field}
		}
		if !contains(q.Options, v) {
			return &InvalidAnswerError{Field: q.Field, Value: v}
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
