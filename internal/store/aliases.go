package store

import "github.com/odysseus0/slh/internal/model"

type Guess = model.Guess
type Submission = model.Submission
type Stats = model.Stats
type DayStatus = model.DayStatus
