package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/locale"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long:  "Query a specific prayer time for today, or across multiple days with --days.\n\nValid prayer names: Imsak, Fajr, Sunrise, Dhuhr, Asr, Sunset, Maghrib, Isha, Firstthird, Midnight, Lastthird",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	prayerName := args[0]
	for _, name := range prayer.AllPrayerNames {
		if strings.EqualFold(name, prayerName) {
			prayerName = name // normalize case
			break
		}
	}
	if _, err := prayer.ParseNames(prayerName); err != nil {
		return err
	}

	// Determine number of days.
	days := 1
	if flagQueryDays != "" {
		var err error
		if days, err = parseDays(flagQueryDays); err != nil {
			return err
		}
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	v, err := s.days(cmd.Context(), days)
	if err != nil {
		return err
	}

	if days == 1 {
		return printQuerySingle(s.out, v, prayerName, s.style)
	}
	if FlagJSON {
		return printQueryJSON(s.out, v, prayerName, s.style)
	}
	return printQueryRich(s.out, v, prayerName, s.style)
}

// queryTime returns the formatted time of name on day i of v.
func queryTime(v *rangeView, i int, name string, style prayer.Style) (string, error) {
	d := v.Days[i]
	prayers, err := prayer.Schedule(d.Times, d.Date, d.Date.Location(), []string{name})
	if err != nil {
		return "", err
	}
	return style.Time(prayers[0].Time), nil
}

func printQuerySingle(w io.Writer, v *rangeView, name string, style prayer.Style) error {
	timeStr, err := queryTime(v, 0, name, style)
	if err != nil {
		return err
	}
	d := v.Days[0]

	if FlagJSON {
		return writeJSON(w, queryJSONSingle{
			Prayer:   name,
			Time:     timeStr,
			Date:     d.Date.Format(api.DateLayout),
			Hijri:    d.Hijri.String(),
			Fallback: d.Times.UsedFallback(name),
		})
	}

	if d.Times.UsedFallback(name) {
		timeStr = display.Warn(timeStr)
	}
	fmt.Fprintf(w, "%s %s\n", style.Name(name), timeStr)
	return nil
}

func printQueryRich(w io.Writer, v *rangeView, name string, style prayer.Style) error {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(fmt.Sprintf("%s Times - %d Days", style.Name(name), len(v.Days))))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", v.Label)
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Date", style.Name(name)})
	todayStr := v.Today.Format(api.DateLayout)

	for i, d := range v.Days {
		timeStr, err := queryTime(v, i, name, style)
		if err != nil {
			return err
		}
		tbl.AddRow([]string{locale.Digits(d.Date.Format("Mon 02 Jan"), style.Lang), timeStr})
		if d.Times.UsedFallback(name) {
			tbl.Mark(i, 1)
		}
		if d.Date.Format(api.DateLayout) == todayStr {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

type queryJSONSingle struct {
	Prayer   string `json:"prayer"`
	Time     string `json:"time"`
	Date     string `json:"date"`
	Hijri    string `json:"hijri"`
	Fallback bool   `json:"fallback,omitempty"`
}

type queryJSONMulti struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer"`
	Days     []queryJSONDay    `json:"days"`
}

type queryJSONDay struct {
	Date     string `json:"date"`
	Hijri    string `json:"hijri"`
	Time     string `json:"time"`
	Fallback bool   `json:"fallback,omitempty"`
}

func printQueryJSON(w io.Writer, v *rangeView, name string, style prayer.Style) error {
	out := queryJSONMulti{
		Location: jsonLocation(v.Label, v.Place, v.Zone, v.Coordinate),
		Prayer:   name,
	}

	for i, d := range v.Days {
		timeStr, err := queryTime(v, i, name, style)
		if err != nil {
			return err
		}
		out.Days = append(out.Days, queryJSONDay{
			Date:     d.Date.Format(api.DateLayout),
			Hijri:    d.Hijri.String(),
			Time:     timeStr,
			Fallback: d.Times.UsedFallback(name),
		})
	}

	return writeJSON(w, out)
}
