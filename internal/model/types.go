package model

import "time"

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
)

// Verdict is the judge's answer to a submission.
type Verdict string

const (
	VerdictRight         Verdict = "right"
	VerdictWrong         Verdict = "wrong"
	VerdictTooSoon       Verdict = "too_soon"
	VerdictAlreadySolved Verdict = "already_solved"
	VerdictUnknown       Verdict = "unknown"
)

type Guess struct {
	ID        int64     `json:"id"`
	Day       int       `json:"day"`
	Part      int       `json:"part"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

type Submission struct {
	ID          int64     `json:"id"`
	Day         int       `json:"day"`
	Part        int       `json:"part"`
	Answer      string    `json:"answer"`
	Verdict     Verdict   `json:"verdict"`
	Message     string    `json:"message,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Stats struct {
	Stars           int        `json:"stars"`
	CompletedDays   int        `json:"completed_days"`
	Guesses         int        `json:"guesses"`
	Submissions     int        `json:"submissions"`
	Right           int        `json:"right"`
	StarsUpdatedAt  *time.Time `json:"stars_updated_at,omitempty"`
	LastSubmittedAt *time.Time `json:"last_submitted_at,omitempty"`
}

type DayStatus struct {
	Day     int `json:"day"`
	Stars   int `json:"stars"`
	Guesses int `json:"guesses"`
}
