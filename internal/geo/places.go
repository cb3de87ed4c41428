package geo

import (
	"strings"

	"github.com/smokyabdulrahman/salat/internal/apperr"
)

// Kind distinguishes administrative levels in the bundled table.
type Kind string

const (
	KindDivision Kind = "division"
	KindDistrict Kind = "district"
)

// DhakaTimezone is the zone shared by every bundled place.
const DhakaTimezone = "Asia/Dhaka"

// Place is a bundled administrative division with a representative
// coordinate (its headquarters town).
type Place struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Kind       Kind       `json:"kind"`
	Division   string     `json:"division"`
	Coordinate Coordinate `json:"coordinate"`
	Timezone   string     `json:"timezone"`
	Aliases    []string   `json:"aliases,omitempty"`
}

func division(name string, lat, lon float64, aliases ...string) Place {
	return Place{
		ID:         slug(name) + "-division",
		Name:       name,
		Kind:       KindDivision,
		Division:   name,
		Coordinate: Coordinate{Latitude: lat, Longitude: lon},
		Timezone:   DhakaTimezone,
		Aliases:    aliases,
	}
}

func district(div, name string, lat, lon float64, aliases ...string) Place {
	return Place{
		ID:         slug(name),
		Name:       name,
		Kind:       KindDistrict,
		Division:   div,
		Coordinate: Coordinate{Latitude: lat, Longitude: lon},
		Timezone:   DhakaTimezone,
		Aliases:    aliases,
	}
}

func slug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "'", "")
	return strings.ReplaceAll(s, " ", "-")
}

// Districts come before divisions so a bare name like "Dhaka" resolves to the
// city rather than the division centroid.
var places = []Place{
	// Dhaka
	district("Dhaka", "Dhaka", 23.8103, 90.4125),
	district("Dhaka", "Faridpur", 23.6070, 89.8429),
	district("Dhaka", "Gazipur", 23.9999, 90.4203),
	district("Dhaka", "Gopalganj", 23.0050, 89.8266),
	district("Dhaka", "Kishoreganj", 24.4449, 90.7766),
	district("Dhaka", "Madaripur", 23.1641, 90.1897),
	district("Dhaka", "Manikganj", 23.8617, 90.0003),
	district("Dhaka", "Munshiganj", 23.5422, 90.5305),
	district("Dhaka", "Narayanganj", 23.6238, 90.5000),
	district("Dhaka", "Narsingdi", 23.9322, 90.7151),
	district("Dhaka", "Rajbari", 23.7574, 89.6445),
	district("Dhaka", "Shariatpur", 23.2423, 90.4348),
	district("Dhaka", "Tangail", 24.2513, 89.9167),

	// Chattogram
	district("Chattogram", "Bandarban", 22.1953, 92.2184),
	district("Chattogram", "Brahmanbaria", 23.9571, 91.1119),
	district("Chattogram", "Chandpur", 23.2333, 90.6712),
	district("Chattogram", "Chattogram", 22.3569, 91.7832, "Chittagong"),
	district("Chattogram", "Cumilla", 23.4607, 91.1809, "Comilla"),
	district("Chattogram", "Cox's Bazar", 21.4272, 92.0058, "Coxs Bazar"),
	district("Chattogram", "Feni", 23.0159, 91.3976),
	district("Chattogram", "Khagrachhari", 23.1193, 91.9847),
	district("Chattogram", "Lakshmipur", 22.9447, 90.8282),
	district("Chattogram", "Noakhali", 22.8696, 91.0995),
	district("Chattogram", "Rangamati", 22.6533, 92.1789),

	// Rajshahi
	district("Rajshahi", "Bogura", 24.8465, 89.3773, "Bogra"),
	district("Rajshahi", "Chapainawabganj", 24.5965, 88.2776, "Nawabganj"),
	district("Rajshahi", "Joypurhat", 25.0968, 89.0227),
	district("Rajshahi", "Naogaon", 24.7936, 88.9318),
	district("Rajshahi", "Natore", 24.4102, 89.0076),
	district("Rajshahi", "Pabna", 24.0064, 89.2372),
	district("Rajshahi", "Rajshahi", 24.3745, 88.6042),
	district("Rajshahi", "Sirajganj", 24.4534, 89.7007),

	// Khulna
	district("Khulna", "Bagerhat", 22.6516, 89.7859),
	district("Khulna", "Chuadanga", 23.6402, 88.8418),
	district("Khulna", "Jashore", 23.1664, 89.2081, "Jessore"),
	district("Khulna", "Jhenaidah", 23.5450, 89.1726),
	district("Khulna", "Khulna", 22.8456, 89.5403),
	district("Khulna", "Kushtia", 23.9013, 89.1204),
	district("Khulna", "Magura", 23.4873, 89.4199),
	district("Khulna", "Meherpur", 23.7622, 88.6318),
	district("Khulna", "Narail", 23.1725, 89.5127),
	district("Khulna", "Satkhira", 22.7185, 89.0705),

	// Barishal
	district("Barishal", "Barguna", 22.1510, 90.1262),
	district("Barishal", "Barishal", 22.7010, 90.3535, "Barisal"),
	district("Barishal", "Bhola", 22.6859, 90.6482),
	district("Barishal", "Jhalokati", 22.6406, 90.1987),
	district("Barishal", "Patuakhali", 22.3596, 90.3299),
	district("Barishal", "Pirojpur", 22.5841, 89.9720),

	// Sylhet
	district("Sylhet", "Habiganj", 24.3745, 91.4155),
	district("Sylhet", "Moulvibazar", 24.4829, 91.7774),
	district("Sylhet", "Sunamganj", 25.0658, 91.3950),
	district("Sylhet", "Sylhet", 24.8949, 91.8687),

	// Rangpur
	district("Rangpur", "Dinajpur", 25.6217, 88.6355),
	district("Rangpur", "Gaibandha", 25.3288, 89.5430),
	district("Rangpur", "Kurigram", 25.8072, 89.6295),
	district("Rangpur", "Lalmonirhat", 25.9923, 89.2847),
	district("Rangpur", "Nilphamari", 25.9317, 88.8560),
	district("Rangpur", "Panchagarh", 26.3411, 88.5542),
	district("Rangpur", "Rangpur", 25.7439, 89.2752),
	district("Rangpur", "Thakurgaon", 26.0336, 88.4616),

	// Mymensingh
	district("Mymensingh", "Jamalpur", 24.9375, 89.9370),
	district("Mymensingh", "Mymensingh", 24.7471, 90.4203),
	district("Mymensingh", "Netrokona", 24.8700, 90.7279),
	district("Mymensingh", "Sherpur", 25.0205, 90.0153),

	division("Dhaka", 23.8103, 90.4125),
	division("Chattogram", 22.3569, 91.7832, "Chittagong"),
	division("Rajshahi", 24.3745, 88.6042),
	division("Khulna", 22.8456, 89.5403),
	division("Barishal", 22.7010, 90.3535, "Barisal"),
	division("Sylhet", 24.8949, 91.8687),
	division("Rangpur", 25.7439, 89.2752),
	division("Mymensingh", 24.7471, 90.4203),
}

// Places returns a copy of the bundled table.
func Places() []Place {
	out := make([]Place, len(places))
	copy(out, places)
	return out
}

// PlacesOfKind returns the bundled places of one administrative level.
func PlacesOfKind(k Kind) []Place {
	var out []Place
	for _, p := range places {
		if p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}

// LookupPlace finds a place by ID, name or alias, ignoring case.
func LookupPlace(name string) (Place, error) {
	q := strings.TrimSpace(name)
	if q == "" {
		return Place{}, apperr.Invalid("place", name, "must not be empty")
	}
	for _, p := range places {
		if strings.EqualFold(p.ID, q) || strings.EqualFold(p.Name, q) || strings.EqualFold(p.ID, slug(q)) {
			return p, nil
		}
		for _, a := range p.Aliases {
			if strings.EqualFold(a, q) {
				return p, nil
			}
		}
	}
	return Place{}, apperr.ErrNotFound.WithDetails(map[string]any{"place": name})
}
