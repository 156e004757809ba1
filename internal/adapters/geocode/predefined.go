package geocode

import (
	"route-decision-service/internal/domain"
	"sort"
	"strings"
)

type landmark struct {
	name   string
	coords domain.Coordinates
}

// Kinshasa landmarks known without any lookup, keyed by lowercase name.
var kinshasaLandmarks = map[string]landmark{
	"place de la victoire":        {"Place de la Victoire", domain.Coordinates{Lat: -4.33787, Lon: 15.30553}},
	"gare centrale":               {"Gare Centrale", domain.Coordinates{Lat: -4.31600, Lon: 15.31300}},
	"marché central":              {"Marché Central", domain.Coordinates{Lat: -4.32500, Lon: 15.31000}},
	"stade des martyrs":           {"Stade des Martyrs", domain.Coordinates{Lat: -4.33200, Lon: 15.30800}},
	"université de kinshasa":      {"Université de Kinshasa", domain.Coordinates{Lat: -4.41500, Lon: 15.30300}},
	"hôpital général de kinshasa": {"Hôpital Général de Kinshasa", domain.Coordinates{Lat: -4.32200, Lon: 15.31100}},
	"palais du peuple":            {"Palais du Peuple", domain.Coordinates{Lat: -4.31800, Lon: 15.31200}},
	"tour de l'échangeur":         {"Tour de l'Échangeur", domain.Coordinates{Lat: -4.33500, Lon: 15.30600}},
	"avenue de la justice":        {"Avenue de la Justice", domain.Coordinates{Lat: -4.32000, Lon: 15.31100}},
	"boulevard du 30 juin":        {"Boulevard du 30 Juin", domain.Coordinates{Lat: -4.32800, Lon: 15.30900}},
	"avenue des aviateurs":        {"Avenue des Aviateurs", domain.Coordinates{Lat: -4.32200, Lon: 15.30800}},
	"place du marché":             {"Place du Marché", domain.Coordinates{Lat: -4.32600, Lon: 15.31000}},
	"carrefour forescom":          {"Carrefour Forescom", domain.Coordinates{Lat: -4.33000, Lon: 15.30700}},
	"avenue de la libération":     {"Avenue de la Libération", domain.Coordinates{Lat: -4.31900, Lon: 15.31200}},
	"immeuble sozacom":            {"Immeuble Sozacom", domain.Coordinates{Lat: -4.31700, Lon: 15.31300}},
}

// Local nicknames mapped to the canonical landmark key.
var kinshasaAliases = map[string]string{
	"victoire":            "place de la victoire",
	"rond point victoire": "place de la victoire",
	"rond-point victoire": "place de la victoire",
	"gare":                "gare centrale",
	"station centrale":    "gare centrale",
	"gare routière":       "gare centrale",
	"grand marché":        "marché central",
	"marché":              "marché central",
	"central market":      "marché central",
	"stade":               "stade des martyrs",
	"martyrs stadium":     "stade des martyrs",
	"stade martyrs":       "stade des martyrs",
	"unikin":              "université de kinshasa",
	"hôpital général":     "hôpital général de kinshasa",
	"échangeur":           "tour de l'échangeur",
	"30 juin":             "boulevard du 30 juin",
	"boulevard 30 juin":   "boulevard du 30 juin",
	"aviateurs":           "avenue des aviateurs",
	"forescom":            "carrefour forescom",
	"sozacom":             "immeuble sozacom",
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Landmarks returns every predefined landmark sorted by name.
func Landmarks() []*domain.Point {
	out := make([]*domain.Point, 0, len(kinshasaLandmarks))
	for _, l := range kinshasaLandmarks {
		out = append(out, domain.NewPoint(l.name, l.coords.Lat, l.coords.Lon, domain.KindStop))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NewLandmarkResolver returns a StaticResolver over the Kinshasa landmarks
// that also understands their local nicknames.
func NewLandmarkResolver() *StaticResolver {
	s := NewStaticResolver(Landmarks()...)
	s.aliases = kinshasaAliases
	return s
}
