package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/coffer/internal/cli"
	"github.com/theirongolddev/coffer/internal/pipeline"
	"github.com/theirongolddev/coffer/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const calendarCellWidth = 9

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Month grid shaded by daily spending",
	RunE:    runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()
	theme.SetActive(s.cfg.Appearance.Theme)

	d, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CALENDAR  %s", cli.FormatMonth(s.month))))
	fmt.Println()

	var header strings.Builder
	header.WriteString("  ")
	for _, wd := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		header.WriteString(cli.Header(fmt.Sprintf("%-*s", calendarCellWidth, " "+wd)))
	}
	fmt.Println(header.String())

	cells := pipeline.CalendarGrid(d.expenses, s.month, s.now)
	blank := strings.Repeat(" ", calendarCellWidth)
	for start := 0; start < len(cells); start += 7 {
		var days, amounts strings.Builder
		days.WriteString("  ")
		amounts.WriteString("  ")
		for i := start; i < start+7; i++ {
			if i >= len(cells) || !cells[i].InMonth {
				days.WriteString(blank)
				amounts.WriteString(blank)
				continue
			}
			c := cells[i]
			fg := theme.Active.TextPrimary
			if c.Intensity >= 0.34 {
				fg = theme.Active.Background
			}
			if c.Future {
				fg = theme.Active.TextDim
			}
			style := lipgloss.NewStyle().
				Background(theme.HeatColor(c.Intensity)).
				Foreground(fg).
				Width(calendarCellWidth - 1)

			day := " " + strconv.Itoa(c.Date.Day())
			if c.Today {
				day += " •"
			}
			amount := ""
			if c.Count > 0 {
				amount = " " + cli.FormatCompact(c.Total)
			}
			days.WriteString(style.Bold(c.Today).Render(day) + " ")
			amounts.WriteString(style.Render(amount) + " ")
		}
		fmt.Println(days.String())
		fmt.Println(amounts.String())
		fmt.Println()
	}

	legend := cli.Muted("less ")
	for _, v := range []float64{0, 0.2, 0.5, 1} {
		legend += lipgloss.NewStyle().Background(theme.HeatColor(v)).Render("  ")
	}
	fmt.Printf("  %s%s\n", legend, cli.Muted(" more"))

	if hd, ok := pipeline.HighestDay(d.expenses); ok {
		fmt.Printf("  %s %s on %s\n", cli.Muted("Highest day:"),
			cli.FormatAmount(hd.Total, s.currency()), cli.FormatDayHeading(hd.Date))
	}
	return nil
}
