package cli

import "github.com/odysseus0/slh/internal/model"

type OutputFormat = model.OutputFormat
type Stats = model.Stats
type DayStatus = model.DayStatus

const (
	OutputTable = model.OutputTable
	OutputJSON  = model.OutputJSON
)
