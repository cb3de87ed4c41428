package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nThis is the one-line form used by status bars such as tmux.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: "+strings.Join(prayer.Formats, ", ")+", or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

type nextJSON struct {
	Current   string `json:"current,omitempty"`
	Next      string `json:"next"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
	Minutes   int    `json:"minutes"`
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	// Priority: --prayers flag > config > defaults.
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		if s.selected, err = prayer.ParseNames(flagPrayers); err != nil {
			return err
		}
	}

	var next prayer.Prayer
	var current string
	var now time.Time
	if FlagServer != "" {
		next, current, now, err = s.remoteNext(cmd.Context())
	} else {
		next, current, now, err = s.localNext(cmd.Context())
	}
	if err != nil {
		return err
	}

	if FlagJSON {
		d := prayer.TimeRemaining(next, now)
		return writeJSON(s.out, nextJSON{
			Current:   current,
			Next:      strings.ToLower(next.Name),
			Time:      s.style.Time(next.Time),
			Remaining: s.style.Remaining(d),
			Minutes:   int(d.Minutes()),
		})
	}

	fmt.Fprintln(s.out, prayer.FormatOutput(next, now, flagFormat, s.style))
	return nil
}

func (s *session) localNext(ctx context.Context) (prayer.Prayer, string, time.Time, error) {
	req, err := s.request(ctx)
	if err != nil {
		return prayer.Prayer{}, "", time.Time{}, err
	}
	mo, err := req.At(clock(), s.selected)
	if err != nil {
		return prayer.Prayer{}, "", time.Time{}, err
	}
	if mo.Next == nil {
		return prayer.Prayer{}, "", time.Time{}, fmt.Errorf("no upcoming prayer found")
	}
	current := ""
	if mo.Current != nil {
		current = strings.ToLower(mo.Current.Name)
	}
	return *mo.Next, current, mo.Now, nil
}

func (s *session) remoteNext(ctx context.Context) (prayer.Prayer, string, time.Time, error) {
	q, err := s.remoteQuery(ctx)
	if err != nil {
		return prayer.Prayer{}, "", time.Time{}, err
	}
	resp, err := s.client().FetchNext(ctx, q, s.selected)
	if err != nil {
		return prayer.Prayer{}, "", time.Time{}, err
	}
	at, err := time.Parse(time.RFC3339, resp.At)
	if err != nil {
		return prayer.Prayer{}, "", time.Time{}, fmt.Errorf("invalid time %q in API response: %w", resp.At, err)
	}
	return prayer.Prayer{Name: resp.Next, Time: at}, strings.ToLower(resp.Current), clock().In(at.Location()), nil
}
