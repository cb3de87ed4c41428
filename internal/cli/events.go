package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/events"
	"github.com/smokyabdulrahman/salat/internal/locale"
)

var (
	flagEventsN        int
	flagEventsCategory string
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List upcoming Islamic events",
		Long:  "Show the next Islamic observances (Eids, Ramadan, sacred nights and days) with the days remaining.",
		Args:  cobra.NoArgs,
		RunE:  runEvents,
	}

	cats := make([]string, len(events.Categories))
	for i, c := range events.Categories {
		cats[i] = string(c)
	}
	cmd.Flags().IntVarP(&flagEventsN, "number", "n", 5, "Number of events to show (0 for all)")
	cmd.Flags().StringVar(&flagEventsCategory, "category", "", "Only show one category: "+strings.Join(cats, ", "))

	return cmd
}

func runEvents(cmd *cobra.Command, args []string) error {
	if flagEventsN < 0 {
		return apperr.Invalid("n", flagEventsN, "must not be negative")
	}
	var category events.Category
	if flagEventsCategory != "" {
		var err error
		if category, err = events.ParseCategory(flagEventsCategory); err != nil {
			return err
		}
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	var list []api.EventResponse
	if FlagServer != "" {
		// The filter needs the full list.
		n := flagEventsN
		if category != "" {
			n = 0
		}
		resp, err := s.client().FetchUpcoming(cmd.Context(), clock(), n)
		if err != nil {
			return err
		}
		list = resp.Events
	} else {
		occ, err := events.Upcoming(s.converter(), clock(), 0)
		if err != nil {
			return err
		}
		list = make([]api.EventResponse, len(occ))
		for i, o := range occ {
			list[i] = api.NewEventResponse(o, s.lang)
		}
	}

	filtered := list[:0]
	for _, e := range list {
		if category == "" || e.Category == string(category) {
			filtered = append(filtered, e)
		}
	}
	if flagEventsN > 0 && len(filtered) > flagEventsN {
		filtered = filtered[:flagEventsN]
	}

	if FlagJSON {
		return writeJSON(s.out, filtered)
	}

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "  %s\n", display.Bold("Upcoming Events"))
	fmt.Fprintln(s.out)

	tbl := display.NewTable([]string{"In", "Date", "Hijri", "Event", "Category"})
	for i, e := range filtered {
		in := locale.Number(e.DaysUntil, s.lang) + "d"
		if e.DaysUntil == 0 {
			in = "today"
			tbl.SetHighlightRow(i)
		}
		tbl.AddRow([]string{in, locale.Digits(e.Gregorian, s.lang), e.Hijri.Formatted, e.Name, e.CategoryName})
	}
	fmt.Fprint(s.out, tbl.Render())
	fmt.Fprintln(s.out)
	return nil
}
