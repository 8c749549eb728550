package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/odysseus0/slh/internal/model"
	"github.com/odysseus0/slh/internal/runner"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type styles struct {
	green     lipgloss.Style
	red       lipgloss.Style
	yellow    lipgloss.Style
	blue      lipgloss.Style
	greenBack lipgloss.Style
	redBack   lipgloss.Style
}

// newStyles colors output only when w is a terminal.
func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	bg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Background(lipgloss.Color(c)).Foreground(lipgloss.Color("0"))
	}
	return styles{
		green:     fg("2"),
		red:       fg("1"),
		yellow:    fg("3"),
		blue:      fg("4"),
		greenBack: bg("2"),
		redBack:   bg("1"),
	}
}

func (s styles) runLine(pr runner.PartReport) string {
	prefix := fmt.Sprintf("%s (%02d/%d) ➡️  ", pr.DayPart.Emoji(), pr.DayPart.Day, pr.DayPart.Part)
	dur := runner.FormatDuration(pr.Duration)
	switch pr.Outcome {
	case runner.OutcomeUnsolved:
		return prefix + s.yellow.Render("problem is unsolved") + " 🤔"
	case runner.OutcomeNoAnswer:
		return prefix + s.yellow.Render("no answer provided?!") + " 👻"
	case runner.OutcomeCancelled:
		return prefix + s.yellow.Render("solution cancelled after "+dur) + " 🛑"
	case runner.OutcomeFailed:
		return prefix + s.red.Render("solution failed: "+oneLine(pr.Error)) + " 💥"
	case runner.OutcomeCorrect:
		return prefix + s.green.Render(fmt.Sprintf("result = %15s, duration = %8s", pr.Answer, dur)) + " ✅"
	case runner.OutcomeIncorrect:
		return prefix + s.red.Render(fmt.Sprintf("result = %15s, duration = %8s", pr.Answer, dur)) + " ❌"
	case runner.OutcomeNewGuess:
		return prefix + s.blue.Render(fmt.Sprintf("result = %q, duration = %s", pr.Answer, dur)) + " 🚀"
	case runner.OutcomeRepeatedGuess:
		return prefix + s.red.Render(fmt.Sprintf("result = %q, duration = %s", pr.Answer, dur)) + " ❌"
	default:
		return prefix + string(pr.Outcome)
	}
}

func (s styles) verdictLine(v model.Verdict, message string) string {
	switch v {
	case model.VerdictRight:
		return s.greenBack.Render(message) + " 😸"
	case model.VerdictUnknown:
		return s.redBack.Render("unexpected output") + " 🙀:\n" + message
	default:
		return s.redBack.Render(message) + " 😿"
	}
}

func writeStatsTable(out io.Writer, st Stats) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	fmt.Fprintf(tw, "stars\t%d/50\n", st.Stars)
	fmt.Fprintf(tw, "completed days\t%d\n", st.CompletedDays)
	fmt.Fprintf(tw, "guesses\t%d\n", st.Guesses)
	fmt.Fprintf(tw, "submissions\t%d\n", st.Submissions)
	fmt.Fprintf(tw, "right answers\t%d\n", st.Right)
	fmt.Fprintf(tw, "calendar synced\t%s\n", humanAgo(st.StarsUpdatedAt))
	fmt.Fprintf(tw, "last submission\t%s\n", humanAgo(st.LastSubmittedAt))
	_ = tw.Flush()
}

func writeDaysTable(out io.Writer, days []DayStatus) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tSTARS\tGUESSES")
	for _, d := range days {
		fmt.Fprintf(tw, "%02d\t%s\t%d\n", d.Day, starString(d.Stars), d.Guesses)
	}
	_ = tw.Flush()
}
