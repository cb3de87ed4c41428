package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/locale"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/schedule"
)

// todayView is everything the root command renders, whether calculated
// locally or fetched from a server.
type todayView struct {
	Label      string
	Place      string
	Zone       string
	Coordinate geo.Coordinate
	Method     string
	Now        time.Time
	Date       time.Time
	Hijri      hijri.Date
	Times      prayer.Times
	Prayers    []prayer.Prayer
	Current    *prayer.Prayer
	Next       *prayer.Prayer
}

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	var v *todayView
	if FlagServer != "" {
		v, err = s.remoteToday(cmd.Context())
	} else {
		v, err = s.localToday(cmd.Context())
	}
	if err != nil {
		return err
	}

	if FlagJSON {
		return printTodayJSON(s.out, v, s.style)
	}
	printTodayRich(s.out, v, s.style)
	return nil
}

func (s *session) localToday(ctx context.Context) (*todayView, error) {
	req, err := s.request(ctx)
	if err != nil {
		return nil, err
	}
	mo, err := req.At(clock(), s.selected)
	if err != nil {
		return nil, err
	}

	v := &todayView{
		Label:      s.locationLabel(req),
		Zone:       req.ZoneName(),
		Coordinate: req.Coordinate,
		Method:     req.Method.Name,
		Now:        mo.Now,
		Date:       mo.Today.Date,
		Hijri:      mo.Today.Hijri,
		Times:      mo.Today.Times,
		Prayers:    mo.Prayers,
		Current:    mo.Current,
		Next:       mo.Next,
	}
	if req.Place != nil {
		v.Place = req.Place.ID
	}
	return v, nil
}

// remoteToday asks the server for today's times and, once they have all
// passed, for tomorrow's first prayer.
func (s *session) remoteToday(ctx context.Context) (*todayView, error) {
	q, err := s.remoteQuery(ctx)
	if err != nil {
		return nil, err
	}
	client := s.client()

	resp, loc, err := s.fetchDay(ctx, client, q, time.Time{})
	if err != nil {
		return nil, err
	}
	now := clock().In(loc)
	day, err := remoteDay(resp, loc)
	if err != nil {
		return nil, err
	}
	prayers, err := prayer.Schedule(day.Times, day.Date, loc, s.selected)
	if err != nil {
		return nil, err
	}

	v := &todayView{
		Label:      s.remoteLabel(resp),
		Place:      resp.Location.Place,
		Zone:       resp.Location.Timezone,
		Coordinate: resp.Location.Coordinate(),
		Method:     resp.Method.Name,
		Now:        now,
		Date:       day.Date,
		Hijri:      day.Hijri,
		Times:      day.Times,
		Prayers:    prayers,
		Current:    prayer.CurrentPrayer(prayers, now),
		Next:       prayer.NextPrayer(prayers, now),
	}
	if v.Next != nil {
		return v, nil
	}

	q.Date = day.Date.AddDate(0, 0, 1)
	tomorrowResp, _, err := s.fetchDay(ctx, client, q, q.Date)
	if err != nil {
		return nil, err
	}
	tomorrow, err := remoteDay(tomorrowResp, loc)
	if err != nil {
		return nil, err
	}
	next, err := prayer.Schedule(tomorrow.Times, tomorrow.Date, loc, s.selected)
	if err != nil {
		return nil, err
	}
	if len(next) > 0 {
		v.Next = &next[0]
	}
	return v, nil
}

// fetchDay fetches one day from the server and resolves the zone it reports.
func (s *session) fetchDay(ctx context.Context, client *api.Client, q api.TimesQuery, date time.Time) (*api.TimesResponse, *time.Location, error) {
	q.Date = date
	resp, err := client.FetchTimes(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	loc, err := geo.ParseZone(resp.Location.Timezone)
	if err != nil {
		loc = geo.NominalZone(resp.Location.Longitude)
	}
	return resp, loc, nil
}

// remoteDay converts a server response into a calculated day.
func remoteDay(resp *api.TimesResponse, loc *time.Location) (schedule.Day, error) {
	t, err := resp.Timings.Times()
	if err != nil {
		return schedule.Day{}, err
	}
	t.Fallback = resp.Fallback
	d, err := time.ParseInLocation(api.DateLayout, resp.Date, loc)
	if err != nil {
		return schedule.Day{}, fmt.Errorf("invalid date %q in API response: %w", resp.Date, err)
	}
	return schedule.Day{Date: d, Times: t, Hijri: resp.Hijri.Hijri()}, nil
}

func (s *session) remoteLabel(resp *api.TimesResponse) string {
	if resp.Location.Place != "" {
		if p, err := geo.LookupPlace(resp.Location.Place); err == nil {
			return p.Name
		}
		return resp.Location.Place
	}
	if s.detected != nil && s.detected.City != "" {
		return s.detected.City + ", " + s.detected.Country
	}
	return resp.Location.Coordinate().String()
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, v *todayView, style prayer.Style) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	// Location and date info.
	fmt.Fprintf(w, "  %s\n", v.Label)
	fmt.Fprintf(w, "  %s\n", display.Gray(v.Zone+" · "+v.Method))
	fmt.Fprintf(w, "  %s\n", locale.Digits(v.Date.Format("Monday, 02 January 2006"), style.Lang))
	fmt.Fprintf(w, "  %s\n", v.Hijri.Format(style.Lang))
	fmt.Fprintln(w)

	// Find the max prayer name width for alignment.
	maxNameLen := 0
	for _, p := range v.Prayers {
		if n := runewidth.StringWidth(style.Name(p.Name)); n > maxNameLen {
			maxNameLen = n
		}
	}

	current, next := -1, -1
	approximated := false
	for i, p := range v.Prayers {
		if v.Current != nil && p.Name == v.Current.Name && p.Time.Equal(v.Current.Time) {
			current = i
		}
		if v.Next != nil && p.Name == v.Next.Name && p.Time.Equal(v.Next.Time) {
			next = i
		}
	}

	for i, p := range v.Prayers {
		timeStr := style.Time(p.Time)
		if v.Times.UsedFallback(p.Name) {
			timeStr = display.Warn(timeStr)
			approximated = true
		}
		line := fmt.Sprintf("  %s  %s", padRight(style.Name(p.Name), maxNameLen), timeStr)

		state := display.StateAt(i, current, next)
		if state == display.StateNext {
			remaining := style.Remaining(prayer.TimeRemaining(p, v.Now))
			line += fmt.Sprintf("  <- next in %s", remaining)
		}
		fmt.Fprintln(w, display.Styled(line, state))
	}

	// Tomorrow's first prayer is not in the list.
	if v.Next != nil && next < 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, display.Accent(fmt.Sprintf("  Next: %s tomorrow at %s (in %s)",
			style.Name(v.Next.Name), style.Time(v.Next.Time),
			style.Remaining(prayer.TimeRemaining(*v.Next, v.Now)))))
	}

	if approximated {
		fmt.Fprintln(w)
		fmt.Fprintln(w, display.Yellow("  * approximated by the high-latitude rule"))
	}
	fmt.Fprintln(w)
}

// padRight pads a string to the given terminal width with spaces.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     todayJSONDate     `json:"date"`
	Method   string            `json:"method"`
	Timings  map[string]string `json:"timings"`
	Fallback []string          `json:"fallback,omitempty"`
	Current  string            `json:"current"`
	Next     *todayJSONNext    `json:"next"`
}

type todayJSONLocation struct {
	Label     string  `json:"label"`
	Place     string  `json:"place,omitempty"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func jsonLocation(label, place, zone string, c geo.Coordinate) todayJSONLocation {
	return todayJSONLocation{
		Label:     label,
		Place:     place,
		Timezone:  zone,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, v *todayView, style prayer.Style) error {
	timings := make(map[string]string)
	for _, p := range v.Prayers {
		timings[strings.ToLower(p.Name)] = style.Time(p.Time)
	}

	out := todayJSON{
		Location: jsonLocation(v.Label, v.Place, v.Zone, v.Coordinate),
		Date: todayJSONDate{
			Gregorian: v.Date.Format(api.DateLayout),
			Hijri:     v.Hijri.String(),
		},
		Method:   v.Method,
		Timings:  timings,
		Fallback: v.Times.Fallback,
	}

	if v.Current != nil {
		out.Current = strings.ToLower(v.Current.Name)
	}

	if v.Next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(v.Next.Name),
			Time:      style.Time(v.Next.Time),
			Remaining: style.Remaining(prayer.TimeRemaining(*v.Next, v.Now)),
		}
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
