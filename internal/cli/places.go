package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/geo"
)

var flagPlacesKind string

func newPlacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "List bundled places",
		Long:  "Print the divisions and districts usable with --place or 'config set place'.",
		Args:  cobra.NoArgs,
		RunE:  runPlaces,
	}
	cmd.Flags().StringVar(&flagPlacesKind, "kind", "", "Filter by kind: division or district")
	return cmd
}

func runPlaces(cmd *cobra.Command, args []string) error {
	var ps []geo.Place
	switch flagPlacesKind {
	case "":
		ps = geo.Places()
	case string(geo.KindDivision), string(geo.KindDistrict):
		ps = geo.PlacesOfKind(geo.Kind(flagPlacesKind))
	default:
		return apperr.Invalid("kind", flagPlacesKind, "must be division or district")
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		out := make([]api.PlaceResponse, len(ps))
		for i, p := range ps {
			out[i] = api.NewPlaceResponse(p)
		}
		return writeJSON(w, out)
	}

	tbl := display.NewTable([]string{"ID", "Name", "Kind", "Division", "Latitude", "Longitude"})
	for _, p := range ps {
		tbl.AddRow([]string{
			p.ID, p.Name, string(p.Kind), p.Division,
			strconv.FormatFloat(p.Coordinate.Latitude, 'f', 4, 64),
			strconv.FormatFloat(p.Coordinate.Longitude, 'f', 4, 64),
		})
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --place <id> or 'salat config set place <id>' to select one.")
	return nil
}
