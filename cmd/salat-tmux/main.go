package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	// Bundled zone database for machines without one.
	_ "time/tzdata"

	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/locale"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/schedule"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// Swappable for tests.
var detectLocation = geo.DetectLocation

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, now time.Time) error {
	fs := pflag.NewFlagSet("salat-tmux", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Location flags
	place := fs.String("place", "", "Bundled district or division, e.g. Dhaka")
	latitude := fs.Float64("latitude", 0, "Latitude for prayer time calculation")
	longitude := fs.Float64("longitude", 0, "Longitude for prayer time calculation")
	tz := fs.String("tz", "", "IANA zone or UTC offset in hours")

	// Calculation flags
	method := fs.String("method", prayer.DefaultMethodID, "Calculation method ID")
	asr := fs.String("asr", "", "Asr juristic method: standard or hanafi")

	// Display flags
	format := fs.String("format", prayer.FormatNameAndTime, "Display format: "+strings.Join(prayer.Formats, ", ")+", or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes")
	timeFmt := fs.String("time-format", "24h", "Time format: 12h or 24h")
	lang := fs.String("lang", "en", "Output language: en, bn or ar")
	prayers := fs.String("prayers", "", "Comma-separated list of prayers to track (default: Fajr,Sunrise,Dhuhr,Asr,Maghrib,Isha)")

	// Cache flags
	cacheDir := fs.String("cache-dir", "", "Cache directory (default: ~/.cache/salat/)")

	// Info flags
	showVersion := fs.Bool("version", false, "Print version and exit")
	listMethods := fs.Bool("list-methods", false, "Print supported calculation methods and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "salat-tmux %s\n", version)
		return nil
	}

	if *listMethods {
		printMethods(stdout)
		return nil
	}

	// Determine which prayers to track.
	selected := prayer.DefaultPrayerNames
	if *prayers != "" {
		var err error
		if selected, err = prayer.ParseNames(*prayers); err != nil {
			return err
		}
	}

	style, err := prayer.ParseTimeFormat(*timeFmt, locale.Parse(*lang))
	if err != nil {
		return err
	}

	opts := schedule.Options{Place: *place, Timezone: *tz, Method: *method, Asr: *asr}
	if fs.Changed("latitude") || fs.Changed("longitude") {
		opts.Latitude, opts.Longitude = latitude, longitude
	} else if opts.Place == "" {
		loc, err := locate(ctx, *cacheDir)
		if err != nil {
			return fmt.Errorf("no location specified and auto-detection failed: %w", err)
		}
		opts.Latitude, opts.Longitude = &loc.Latitude, &loc.Longitude
		if opts.Timezone == "" {
			if _, err := geo.ParseZone(loc.Timezone); err == nil {
				opts.Timezone = loc.Timezone
			}
		}
	}

	req, err := schedule.Resolve(opts)
	if err != nil {
		return err
	}
	mo, err := req.At(now, selected)
	if err != nil {
		return err
	}
	if mo.Next == nil {
		return fmt.Errorf("could not determine next prayer")
	}

	// No trailing newline: tmux renders the output as-is.
	fmt.Fprint(stdout, prayer.FormatOutput(*mo.Next, mo.Now, *format, style))
	return nil
}

// locate returns the cached geolocation, detecting it on a miss.
func locate(ctx context.Context, cacheDir string) (*geo.Location, error) {
	store, err := cache.NewFileStore(cacheDir)
	if err != nil {
		// Cache init failure is non-fatal; we just skip caching.
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		return detectLocation(ctx, "")
	}
	loc, _, err := cache.New(store).Locate(ctx, "", detectLocation)
	return loc, err
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s %s\n", "ID", "Name")
	fmt.Fprintf(w, "  %-10s %s\n", "──", "────")
	for _, m := range prayer.Methods() {
		fmt.Fprintf(w, "  %-10s %s\n", m.ID, m.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <ID> to select a calculation method.")
	fmt.Fprintf(w, "If omitted, %s is used.\n", prayer.DefaultMethodID)
}
