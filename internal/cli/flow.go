package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/model"
	"github.com/odysseus0/slh/internal/prompt"
	"github.com/odysseus0/slh/internal/runner"
	"github.com/odysseus0/slh/internal/store"
	"github.com/odysseus0/slh/internal/workspace"
)

var errTooEarly = errors.New("still have a long time to wait")

var spinnerFrames = []string{"⣾", "⣷", "⣯", "⣟", "⡿", "⢿", "⣻", "⣽"}

// flow drives the next/run/submit cycle. Steps chain into each other (a new
// guess is submitted, a right part 1 answer generates part 2), so progress
// is printed as it happens in table mode and collected into one
// FlowResponse for JSON output.
type flow struct {
	app    *App
	out    io.Writer
	errOut io.Writer
	format OutputFormat
	styles styles
	resp   FlowResponse
}

func newFlow(app *App, out, errOut io.Writer, format OutputFormat) *flow {
	return &flow{app: app, out: out, errOut: errOut, format: format, styles: newStyles(out)}
}

func (f *flow) printf(format string, args ...any) {
	if f.format == OutputTable {
		fmt.Fprintf(f.out, format, args...)
	}
}

func (f *flow) finish() error {
	if f.format == OutputJSON {
		if err := writeJSON(f.out, f.resp); err != nil {
			return err
		}
	}
	if f.resp.ExitCode != 0 {
		return exitError{code: f.resp.ExitCode}
	}
	return nil
}

func (f *flow) latest() (daypart.DayPart, bool, error) {
	dps, err := f.app.plugin.AllDayParts(f.app.root)
	if err != nil {
		return daypart.DayPart{}, false, err
	}
	if len(dps) == 0 {
		return daypart.DayPart{}, false, nil
	}
	return dps[len(dps)-1], true, nil
}

// next scaffolds the part after the most recent one, waiting for its
// release when it is less than an hour away.
func (f *flow) next(ctx context.Context) error {
	year, err := f.app.Year()
	if err != nil {
		return err
	}
	if _, err := f.app.Client(); err != nil {
		return err
	}

	var prev *daypart.DayPart
	next := daypart.First()
	if last, ok, err := f.latest(); err != nil {
		return err
	} else if ok {
		prev = &last
		if next, err = last.Next(); err != nil {
			if errors.Is(err, daypart.ErrFinished) {
				return fmt.Errorf("%w: %w", err, store.ErrInvalidInput)
			}
			return err
		}
	}

	if err := f.waitForRelease(ctx, year, next.Day); err != nil {
		return err
	}
	return f.createNextFiles(ctx, year, next, prev)
}

func (f *flow) waitForRelease(ctx context.Context, year, day int) error {
	release := daypart.ReleaseTime(year, day)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		wait := release.Sub(f.app.now())
		if wait < 5*time.Second {
			if i > 0 {
				fmt.Fprintln(f.errOut)
			}
			return nil
		}
		if wait >= time.Hour {
			return fmt.Errorf("%w: %.1f hours", errTooEarly, wait.Hours())
		}
		fmt.Fprintf(f.errOut, "\rwaiting for the next input to go live! %s %s",
			formatCountdown(wait), spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-ctx.Done():
			fmt.Fprintln(f.errOut)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (f *flow) createNextFiles(ctx context.Context, year int, next daypart.DayPart, prev *daypart.DayPart) error {
	client, err := f.app.Client()
	if err != nil {
		return err
	}
	layout := f.app.layout

	f.printf("Generating files for day %d part %d:\n", next.Day, next.Part)
	if err := os.MkdirAll(layout.OutDir(next), 0o755); err != nil {
		return err
	}
	f.printf("... %s created ✅\n", layout.OutDir(next))

	files, err := f.app.plugin.GenerateNextFiles(f.app.root, year, next, prev)
	if err != nil {
		return err
	}
	for _, file := range files {
		f.printf("... %s written ✅\n", file)
	}

	if next.Part == 1 {
		input, err := client.FetchInput(ctx, year, next.Day)
		if err != nil {
			return fmt.Errorf("download input: %w", err)
		}
		if err := workspace.WriteReadOnly(layout.InputFile(next), []byte(input)); err != nil {
			return err
		}
		files = append(files, layout.InputFile(next))
		f.printf("... %s written ✅\n", layout.InputFile(next))
	}

	page, err := client.FetchPrompt(ctx, year, next.Day)
	if err != nil {
		return fmt.Errorf("download prompt: %w", err)
	}
	doc, err := prompt.Parse(page, prompt.WithLogger(f.app.log))
	if err != nil {
		return fmt.Errorf("convert prompt: %w", err)
	}
	if len(doc.Regions) == 0 {
		f.app.log.Warn().Int("day", next.Day).Msg("prompt page has no puzzle description")
	}
	if err := os.WriteFile(layout.PromptFile(next), []byte(doc.Markdown()), 0o644); err != nil {
		return err
	}
	files = append(files, layout.PromptFile(next))
	f.printf("... %s written ✅\n", layout.PromptFile(next))

	f.resp.Generated = append(f.resp.Generated, NextResponse{DayPart: next, Files: files})
	f.printf("All finished, AOC day %d part %d is ready! 🎉\n", next.Day, next.Part)
	return nil
}

// run executes selections; new answers for unsolved parts are submitted
// right away.
func (f *flow) run(ctx context.Context, selections []daypart.DayPart, count int) error {
	r := &runner.Runner{
		Root:    f.app.root,
		Plugin:  f.app.plugin,
		Guesses: f.app.store,
		Log:     f.app.log,
		OnResult: func(pr runner.PartReport) {
			f.resp.Runs = append(f.resp.Runs, pr)
			f.printf("%s\n", f.styles.runLine(pr))
		},
		OnNewGuess: func(ctx context.Context, dp daypart.DayPart) (int, error) {
			return 0, f.submit(ctx, dp)
		},
	}
	report, err := r.Run(ctx, selections, count)
	if errors.Is(err, runner.ErrInvalidCount) {
		return fmt.Errorf("%w: %w", store.ErrInvalidInput, err)
	}
	if err != nil {
		return err
	}
	f.resp.ExitCode |= report.ExitCode
	return nil
}

// submit sends the stored solution for dp and follows up on a right answer:
// the part is locked, the calendar refreshed, and the next part generated
// (or the final star claimed on day 25).
func (f *flow) submit(ctx context.Context, dp daypart.DayPart) error {
	year, err := f.app.Year()
	if err != nil {
		return err
	}
	solutionFile := f.app.layout.SolutionFile(dp)
	data, err := os.ReadFile(solutionFile)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no solution exists yet for %s: %w", dp, store.ErrNotFound)
	}
	if err != nil {
		return err
	}

	accepted, err := f.app.store.HasRightAnswer(ctx, dp)
	if err != nil {
		return err
	}
	if workspace.IsSolved(solutionFile) || accepted {
		return fmt.Errorf("%s is already solved: %w", dp, store.ErrInvalidInput)
	}

	if f.sourceNewer(dp, solutionFile) {
		f.printf("solution has been modified, executing `run` again ...\n")
		return f.run(ctx, []daypart.DayPart{dp}, 1)
	}

	answer := strings.TrimSpace(string(data))
	if err := f.checkNotRejected(ctx, dp, answer); err != nil {
		return err
	}
	right, err := f.submitAnswer(ctx, year, dp, answer)
	if err != nil || !right {
		return err
	}
	if err := workspace.MarkSolved(solutionFile); err != nil {
		return err
	}
	if err := f.updateCalendar(ctx, year); err != nil {
		return err
	}

	switch {
	case dp.Day == daypart.LastDay:
		return f.submitFinalStar(ctx, year)
	case dp.Part == 1:
		return f.next(ctx)
	}
	return nil
}

// submitFinalStar claims day 25 part 2, which has no puzzle of its own.
func (f *flow) submitFinalStar(ctx context.Context, year int) error {
	dp := daypart.DayPart{Day: daypart.LastDay, Part: daypart.LastPart}
	solutionFile := f.app.layout.SolutionFile(dp)
	if workspace.IsSolved(solutionFile) {
		return nil
	}
	if err := os.WriteFile(solutionFile, []byte("0"), 0o644); err != nil {
		return err
	}
	right, err := f.submitAnswer(ctx, year, dp, "0")
	if err != nil || !right {
		return err
	}
	if err := workspace.MarkSolved(solutionFile); err != nil {
		return err
	}
	return f.updateCalendar(ctx, year)
}

// checkNotRejected refuses to send the answer the judge last called wrong.
func (f *flow) checkNotRejected(ctx context.Context, dp daypart.DayPart, answer string) error {
	last, err := f.app.store.LastSubmission(ctx, dp)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if last.Answer == answer && last.Verdict == model.VerdictWrong {
		return fmt.Errorf("%q was already rejected for %s %s: %w", answer, dp, humanAgo(&last.SubmittedAt), store.ErrInvalidInput)
	}
	return nil
}

func (f *flow) sourceNewer(dp daypart.DayPart, solutionFile string) bool {
	src, err := os.Stat(f.app.plugin.SrcFile(f.app.root, dp))
	if err != nil {
		return false
	}
	sol, err := os.Stat(solutionFile)
	if err != nil {
		return false
	}
	return sol.ModTime().Before(src.ModTime())
}

func (f *flow) submitAnswer(ctx context.Context, year int, dp daypart.DayPart, answer string) (bool, error) {
	client, err := f.app.Client()
	if err != nil {
		return false, err
	}
	res, err := client.SubmitAnswer(ctx, year, dp, answer)
	if err != nil {
		return false, err
	}
	if _, err := f.app.store.RecordSubmission(ctx, store.Submission{
		Day:     dp.Day,
		Part:    dp.Part,
		Answer:  answer,
		Verdict: res.Verdict,
		Message: res.Message,
	}); err != nil {
		return false, err
	}
	f.app.log.Debug().Str("daypart", dp.String()).Str("verdict", string(res.Verdict)).Msg("answer submitted")

	f.resp.Submissions = append(f.resp.Submissions, SubmitResponse{
		DayPart: dp,
		Answer:  answer,
		Verdict: res.Verdict,
		Message: res.Message,
	})
	f.printf("%s\n", f.styles.verdictLine(res.Verdict, res.Message))

	if res.Verdict != model.VerdictRight {
		f.resp.ExitCode |= 1
		return false, nil
	}
	return true, nil
}

// updateCalendar syncs the star counts from the event calendar into the
// progress database and the README table.
func (f *flow) updateCalendar(ctx context.Context, year int) error {
	client, err := f.app.Client()
	if err != nil {
		return err
	}
	page, err := client.FetchCalendar(ctx, year)
	if err != nil {
		return fmt.Errorf("download calendar: %w", err)
	}
	stars, err := prompt.ParseCalendarStars(page)
	if err != nil {
		return fmt.Errorf("parse calendar: %w", err)
	}
	if err := f.app.store.ReplaceStars(ctx, stars); err != nil {
		return err
	}
	if err := workspace.UpdateReadmeStars(filepath.Join(f.app.root, "README.md"), stars); err != nil {
		return err
	}

	total := 0
	for _, n := range stars {
		total += n
	}
	f.resp.Calendar = &CalendarResponse{Stars: stars, Total: total}
	f.printf("updated calendar with more stars ✨✨\n")
	return nil
}
