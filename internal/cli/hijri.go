package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/locale"
)

var flagToGregorian string

func newHijriCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hijri [YYYY-MM-DD]",
		Short: "Convert between Gregorian and Hijri dates",
		Long: "Show the Hijri date of today or of a Gregorian date.\n" +
			"With --to-gregorian, convert a Hijri date (YYYY-MM-DD) to Gregorian.\n\n" +
			"Dates use the tabular (arithmetic) calendar; --hijri-adjust shifts it by up to two days.",
		Args: cobra.MaximumNArgs(1),
		RunE: runHijri,
	}
	cmd.Flags().StringVar(&flagToGregorian, "to-gregorian", "", "Hijri date to convert, e.g. 1445-09-01")

	cmd.AddCommand(&cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show a Hijri month with its Gregorian dates",
		Long:  "Print every day of a Hijri month (default: the current one) next to its Gregorian date.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHijriMonth,
	})

	return cmd
}

// parseHijri parses a "YYYY-MM-DD" or "YYYY-MM" Hijri date. A missing day is 1.
func parseHijri(s string) (hijri.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 2 || len(parts) > 3 {
		return hijri.Date{}, apperr.Invalid("date", s, "must be a Hijri date like 1445-09-01")
	}
	nums := []int{0, 0, 1}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return hijri.Date{}, apperr.Invalid("date", s, "must be a Hijri date like 1445-09-01")
		}
		nums[i] = n
	}
	d := hijri.Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	return d, d.Validate()
}

func runHijri(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	conv := s.converter()

	var resp api.CalendarResponse
	switch {
	case flagToGregorian != "":
		if len(args) > 0 {
			return fmt.Errorf("--to-gregorian cannot be combined with a Gregorian date")
		}
		h, err := parseHijri(flagToGregorian)
		if err != nil {
			return err
		}
		if FlagServer != "" {
			r, err := s.client().FetchGregorian(ctx, h)
			if err != nil {
				return err
			}
			resp = *r
			break
		}
		g, err := conv.ToGregorian(h)
		if err != nil {
			return err
		}
		resp = api.NewCalendarResponse(g, h, s.lang)

	default:
		date := clock()
		if len(args) > 0 {
			if date, err = time.Parse(api.DateLayout, args[0]); err != nil {
				return apperr.Invalid("date", args[0], "must be a date like 2006-01-02")
			}
		}
		if FlagServer != "" {
			r, err := s.client().FetchHijri(ctx, date)
			if err != nil {
				return err
			}
			resp = *r
			break
		}
		h, err := conv.ToHijri(date)
		if err != nil {
			return err
		}
		resp = api.NewCalendarResponse(date, h, s.lang)
	}

	if FlagJSON {
		return writeJSON(s.out, resp)
	}
	printCalendar(s.out, resp, s.lang)
	return nil
}

func printCalendar(w io.Writer, r api.CalendarResponse, lang locale.Lang) {
	g, err := time.Parse(api.DateLayout, r.Gregorian)
	greg := r.Gregorian
	if err == nil {
		greg = locale.Digits(g.Format("Monday, 02 January 2006"), lang)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(r.Hijri.Formatted))
	fmt.Fprintf(w, "  %s\n", greg)
	fmt.Fprintln(w)
}

type hijriMonthJSON struct {
	Year      int                    `json:"year"`
	Month     int                    `json:"month"`
	MonthName string                 `json:"month_name"`
	Days      []api.CalendarResponse `json:"days"`
}

func runHijriMonth(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	conv := s.converter()

	today, err := conv.Today(clock())
	if err != nil {
		return err
	}
	target := today
	if len(args) > 0 {
		if target, err = parseHijri(args[0]); err != nil {
			return err
		}
	}

	days, err := conv.Month(target.Year, target.Month)
	if err != nil {
		return err
	}

	out := hijriMonthJSON{
		Year:      target.Year,
		Month:     target.Month,
		MonthName: locale.HijriMonth(target.Month, s.lang),
		Days:      make([]api.CalendarResponse, len(days)),
	}
	for i, g := range days {
		h := hijri.Date{Year: target.Year, Month: target.Month, Day: i + 1}
		out.Days[i] = api.NewCalendarResponse(g, h, s.lang)
	}
	if FlagJSON {
		return writeJSON(s.out, out)
	}

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "  %s\n", display.Bold(out.MonthName+" "+locale.Number(target.Year, s.lang)+" "+locale.HijriEra(s.lang)))
	fmt.Fprintln(s.out)

	tbl := display.NewTable([]string{"Hijri", "Gregorian", "Day"})
	for i, g := range days {
		tbl.AddRow([]string{
			locale.Number(i+1, s.lang),
			locale.Digits(g.Format("02 Jan 2006"), s.lang),
			g.Weekday().String(),
		})
		if target.Year == today.Year && target.Month == today.Month && i+1 == today.Day {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(s.out, tbl.Render())
	fmt.Fprintln(s.out)
	return nil
}
