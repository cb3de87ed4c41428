package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/locale"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/schedule"
)

// session is the merged configuration of one command invocation.
type session struct {
	cfg      *config.Config
	lang     locale.Lang
	style    prayer.Style
	selected []string
	out      io.Writer
	errOut   io.Writer

	// detected is set when the location came from IP geolocation.
	detected *geo.Location
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	lang := locale.Lang(cfg.Language)
	style, err := prayer.ParseTimeFormat(cfg.TimeFormat, lang)
	if err != nil {
		return nil, err
	}

	// Determine which prayers to track.
	selected := prayer.DefaultPrayerNames
	if cfg.Prayers != "" {
		if selected, err = prayer.ParseNames(cfg.Prayers); err != nil {
			return nil, err
		}
	}

	return &session{
		cfg:      cfg,
		lang:     lang,
		style:    style,
		selected: selected,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}, nil
}

func (s *session) converter() hijri.Converter {
	return hijri.Converter{Adjust: s.cfg.HijriAdjustOrDefault(0)}
}

func (s *session) options() schedule.Options {
	return schedule.Options{
		Place:       s.cfg.Place,
		Latitude:    s.cfg.Latitude,
		Longitude:   s.cfg.Longitude,
		Elevation:   s.cfg.Elevation,
		Timezone:    s.cfg.Timezone,
		Method:      s.cfg.Method,
		Asr:         s.cfg.Asr,
		HighLat:     s.cfg.HighLat,
		HijriAdjust: s.cfg.HijriAdjustOrDefault(0),
	}
}

// locate fills in the location when neither coordinates nor a place were
// given. Priority: coordinates > place > cached geolocation > IP auto-detect.
func (s *session) locate(ctx context.Context) (schedule.Options, error) {
	opts := s.options()
	if opts.Latitude != nil || opts.Longitude != nil || opts.Place != "" {
		return opts, nil
	}

	loc, err := s.detect(ctx)
	if err != nil {
		return opts, fmt.Errorf("no location specified and auto-detection failed: %w", err)
	}
	s.detected = loc

	lat, lon := loc.Latitude, loc.Longitude
	opts.Latitude, opts.Longitude = &lat, &lon
	if opts.Timezone == "" {
		if _, err := geo.ParseZone(loc.Timezone); err == nil {
			opts.Timezone = loc.Timezone
		}
	}
	return opts, nil
}

func (s *session) detect(ctx context.Context) (*geo.Location, error) {
	store, err := cache.NewFileStore(s.cfg.CacheDir)
	if err != nil {
		// Cache init failure is non-fatal; we just skip caching.
		fmt.Fprintf(s.errOut, "warning: cache disabled: %v\n", err)
		return detectLocation(ctx, "")
	}

	c := cache.New(store, cache.WithLogger(log), cache.WithClock(clock))
	loc, cached, err := c.Locate(ctx, "", detectLocation)
	if err != nil {
		return nil, err
	}
	log.Debug("location detected",
		zap.Bool("cached", cached),
		zap.String("city", loc.City),
		zap.String("timezone", loc.Timezone),
	)
	return loc, nil
}

// request resolves the location and calculation parameters.
func (s *session) request(ctx context.Context) (*schedule.Request, error) {
	opts, err := s.locate(ctx)
	if err != nil {
		return nil, err
	}
	req, err := schedule.Resolve(opts)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved request",
		zap.String("coordinate", req.Coordinate.String()),
		zap.String("zone", req.ZoneName()),
		zap.String("method", req.Method.ID),
	)
	return req, nil
}

// locationLabel describes where times were calculated for.
func (s *session) locationLabel(req *schedule.Request) string {
	if s.detected != nil && s.detected.City != "" && req.Place == nil {
		if s.detected.Country != "" {
			return s.detected.City + ", " + s.detected.Country
		}
		return s.detected.City
	}
	return req.Label()
}

// client returns an API client for --server.
func (s *session) client() *api.Client {
	c := api.NewClient()
	base := strings.TrimRight(FlagServer, "/")
	if !strings.HasSuffix(base, "/api/v1") {
		base += "/api/v1"
	}
	c.BaseURL = base
	c.Language = string(s.lang)
	return c
}

// remoteQuery is the TimesQuery equivalent of the resolved options.
func (s *session) remoteQuery(ctx context.Context) (api.TimesQuery, error) {
	opts, err := s.locate(ctx)
	if err != nil {
		return api.TimesQuery{}, err
	}
	q := api.TimesQuery{
		Latitude:  opts.Latitude,
		Longitude: opts.Longitude,
		Elevation: opts.Elevation,
		Timezone:  opts.Timezone,
		Method:    opts.Method,
		Asr:       opts.Asr,
		HighLat:   opts.HighLat,
	}
	if opts.Latitude == nil && opts.Longitude == nil {
		q.Place = opts.Place
	}
	return q, nil
}
