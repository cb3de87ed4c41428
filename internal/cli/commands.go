package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  salat config set place Sylhet\n  salat config set latitude 23.8103\n  salat config set method MWL\n  salat config set asr hanafi\n  salat config set time_format 12h\n  salat config set language bn\n  salat config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		return writeJSON(w, cfg)
	}

	defaults := config.Defaults()
	fmt.Fprintf(w, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Gray("(not set)")
			if def, _ := defaults.Get(key); def != "" {
				shown = display.Gray("(default: " + def + ")")
			}
		}
		// Add a descriptive label for the method.
		if key == "method" && val != "" {
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(w, "  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
// Environment overrides are not written back to the file.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.ReadFile(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method name to the ID.
func formatMethodValue(val string) string {
	if m, err := prayer.LookupMethod(val); err == nil {
		return fmt.Sprintf("%s (%s)", m.ID, m.Name)
	}
	return val
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of all supported calculation methods and their twilight angles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ms := prayer.Methods()

			if FlagJSON {
				out := make([]api.MethodInfo, len(ms))
				for i, m := range ms {
					out[i] = api.NewMethodInfo(m)
				}
				return writeJSON(w, out)
			}

			fmt.Fprintln(w, "Supported calculation methods:")
			fmt.Fprintln(w)
			tbl := display.NewTable([]string{"ID", "Name", "Fajr", "Isha", "Asr"})
			for i, m := range ms {
				isha := angle(m.IshaAngle)
				if m.IshaMinutes > 0 {
					isha = strconv.FormatFloat(m.IshaMinutes, 'f', -1, 64) + " min"
				}
				tbl.AddRow([]string{m.ID, m.Name, angle(m.FajrAngle), isha, m.Asr.String()})
				if m.ID == prayer.DefaultMethodID {
					tbl.SetHighlightRow(i)
				}
			}
			fmt.Fprint(w, tbl.Render())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Use --method <ID> to select a calculation method.")
			fmt.Fprintf(w, "If omitted, %s is used.\n", prayer.DefaultMethodID)
			return nil
		},
	}
}

func angle(deg float64) string {
	return strconv.FormatFloat(deg, 'f', -1, 64) + "°"
}
