package cli

import (
	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/model"
	"github.com/odysseus0/slh/internal/runner"
)

type NextResponse struct {
	DayPart daypart.DayPart `json:"daypart"`
	Files   []string        `json:"files"`
}

type SubmitResponse struct {
	DayPart daypart.DayPart `json:"daypart"`
	Answer  string          `json:"answer"`
	Verdict model.Verdict   `json:"verdict"`
	Message string          `json:"message,omitempty"`
}

type CalendarResponse struct {
	Stars []int `json:"stars"`
	Total int   `json:"total"`
}

// FlowResponse is the JSON output of next, run, submit and calendar, which
// may chain into one another.
type FlowResponse struct {
	Runs        []runner.PartReport `json:"runs,omitempty"`
	Submissions []SubmitResponse    `json:"submissions,omitempty"`
	Generated   []NextResponse      `json:"generated,omitempty"`
	Calendar    *CalendarResponse   `json:"calendar,omitempty"`
	ExitCode    int                 `json:"exit_code"`
}

type PromptResponse struct {
	Title    string   `json:"title"`
	Regions  []string `json:"regions"`
	Markdown string   `json:"markdown"`
}

type StatusResponse struct {
	Stats   Stats              `json:"stats"`
	Days    []DayStatus        `json:"days"`
	Recent  []model.Submission `json:"recent_submissions"`
	Guesses []model.Guess      `json:"guesses,omitempty"`
}
