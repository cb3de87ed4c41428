package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/locale"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/schedule"
)

// maxRemoteDays matches the server's /times/range limit.
const maxRemoteDays = 31

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days starting today (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// rangeView is a run of consecutive days for one location.
type rangeView struct {
	Label      string
	Place      string
	Zone       string
	Coordinate geo.Coordinate
	Today      time.Time
	Days       []schedule.Day
}

// parseDays accepts a positive count, "week" or "month".
func parseDays(s string) (int, error) {
	switch s {
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > schedule.MaxDays {
		return 0, fmt.Errorf("invalid number of days: %q (must be 1-%d, 'week' or 'month')", s, schedule.MaxDays)
	}
	return n, nil
}

// days calculates or fetches n days starting today.
func (s *session) days(ctx context.Context, n int) (*rangeView, error) {
	if FlagServer != "" {
		return s.remoteDays(ctx, n)
	}

	req, err := s.request(ctx)
	if err != nil {
		return nil, err
	}
	today := clock().In(req.Location)
	days, err := req.Range(today, n)
	if err != nil {
		return nil, err
	}

	v := &rangeView{
		Label:      s.locationLabel(req),
		Zone:       req.ZoneName(),
		Coordinate: req.Coordinate,
		Today:      today,
		Days:       days,
	}
	if req.Place != nil {
		v.Place = req.Place.ID
	}
	return v, nil
}

func (s *session) remoteDays(ctx context.Context, n int) (*rangeView, error) {
	if n > maxRemoteDays {
		return nil, fmt.Errorf("at most %d days can be fetched from a server", maxRemoteDays)
	}
	q, err := s.remoteQuery(ctx)
	if err != nil {
		return nil, err
	}
	resps, err := s.client().FetchRange(ctx, q, n)
	if err != nil {
		return nil, err
	}
	if len(resps) == 0 {
		return nil, fmt.Errorf("server returned no days")
	}

	first := &resps[0]
	loc, err := geo.ParseZone(first.Location.Timezone)
	if err != nil {
		loc = geo.NominalZone(first.Location.Longitude)
	}
	v := &rangeView{
		Label:      s.remoteLabel(first),
		Place:      first.Location.Place,
		Zone:       first.Location.Timezone,
		Coordinate: first.Location.Coordinate(),
		Today:      clock().In(loc),
		Days:       make([]schedule.Day, 0, len(resps)),
	}
	for i := range resps {
		day, err := remoteDay(&resps[i], loc)
		if err != nil {
			return nil, err
		}
		v.Days = append(v.Days, day)
	}
	return v, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	n := defaultDays
	if len(args) > 0 {
		var err error
		if n, err = parseDays(args[0]); err != nil {
			return err
		}
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	v, err := s.days(cmd.Context(), n)
	if err != nil {
		return err
	}

	if FlagJSON {
		return printListJSON(s.out, v, s.selected, s.style)
	}
	return printListRich(s.out, v, s.selected, s.style, fmt.Sprintf("Prayer Times - %d Days", n))
}

func printListRich(w io.Writer, v *rangeView, selected []string, style prayer.Style, title string) error {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(title))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", v.Label)
	fmt.Fprintf(w, "  %s\n", display.Gray(v.Zone))
	fmt.Fprintln(w)

	// Build table.
	headers := []string{"Date", "Hijri"}
	for _, name := range selected {
		headers = append(headers, style.Name(name))
	}
	tbl := display.NewTable(headers)

	todayStr := v.Today.Format(api.DateLayout)
	approximated := false
	for i, d := range v.Days {
		row := []string{
			locale.Digits(d.Date.Format("Mon 02 Jan"), style.Lang),
			locale.Number(d.Hijri.Day, style.Lang) + " " + locale.HijriMonth(d.Hijri.Month, style.Lang),
		}
		prayers, err := prayer.Schedule(d.Times, d.Date, d.Date.Location(), selected)
		if err != nil {
			return err
		}
		for j, p := range prayers {
			row = append(row, style.Time(p.Time))
			if d.Times.UsedFallback(p.Name) {
				tbl.Mark(i, j+2)
				approximated = true
			}
		}
		tbl.AddRow(row)

		// Highlight today's row.
		if d.Date.Format(api.DateLayout) == todayStr {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(w, tbl.Render())
	if approximated {
		fmt.Fprintln(w)
		fmt.Fprintln(w, display.Yellow("  * approximated by the high-latitude rule"))
	}
	fmt.Fprintln(w)
	return nil
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location todayJSONLocation `json:"location"`
	Days     []listJSONDay     `json:"days"`
}

type listJSONDay struct {
	Date     string            `json:"date"`
	Hijri    string            `json:"hijri"`
	Timings  map[string]string `json:"timings"`
	Fallback []string          `json:"fallback,omitempty"`
}

func printListJSON(w io.Writer, v *rangeView, selected []string, style prayer.Style) error {
	out := listJSONOutput{
		Location: jsonLocation(v.Label, v.Place, v.Zone, v.Coordinate),
		Days:     make([]listJSONDay, 0, len(v.Days)),
	}

	for _, d := range v.Days {
		prayers, err := prayer.Schedule(d.Times, d.Date, d.Date.Location(), selected)
		if err != nil {
			return err
		}

		timings := make(map[string]string)
		for _, p := range prayers {
			timings[strings.ToLower(p.Name)] = style.Time(p.Time)
		}

		out.Days = append(out.Days, listJSONDay{
			Date:     d.Date.Format(api.DateLayout),
			Hijri:    d.Hijri.String(),
			Timings:  timings,
			Fallback: d.Times.Fallback,
		})
	}

	return writeJSON(w, out)
}
