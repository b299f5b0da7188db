package places

import "github.com/benmeehan/locality-agent/pkg/geo"

// DefaultPlace is the fallback used when nothing better is known.
const DefaultPlace = "Georgetown, Guyana"

var builtinPlaces = []Place{
	{Name: "Georgetown, Guyana", Coordinate: geo.Coordinate{Latitude: 6.8013, Longitude: -58.1551}},
	{Name: "Linden, Guyana", Coordinate: geo.Coordinate{Latitude: 6.0010, Longitude: -58.3060}},
	{Name: "New Amsterdam, Guyana", Coordinate: geo.Coordinate{Latitude: 6.2499, Longitude: -57.5170}},
	{Name: "Anna Regina, Guyana", Coordinate: geo.Coordinate{Latitude: 7.2644, Longitude: -58.5077}},
	{Name: "Bartica, Guyana", Coordinate: geo.Coordinate{Latitude: 6.4060, Longitude: -58.6250}},
	{Name: "Lethem, Guyana", Coordinate: geo.Coordinate{Latitude: 3.3803, Longitude: -59.7968}},
	{Name: "Rose Hall, Guyana", Coordinate: geo.Coordinate{Latitude: 6.2600, Longitude: -57.3500}},
	{Name: "Corriverton, Guyana", Coordinate: geo.Coordinate{Latitude: 5.8833, Longitude: -57.1667}},
	{Name: "Vreed-en-Hoop, Guyana", Coordinate: geo.Coordinate{Latitude: 6.8093, Longitude: -58.1887}},
	{Name: "Parika, Guyana", Coordinate: geo.Coordinate{Latitude: 6.8667, Longitude: -58.4167}},
	{Name: "Mahaica, Guyana", Coordinate: geo.Coordinate{Latitude: 6.6833, Longitude: -57.9167}},
	{Name: "Mabaruma, Guyana", Coordinate: geo.Coordinate{Latitude: 8.2000, Longitude: -59.7833}},
	{Name: "Queens, NY", Coordinate: geo.Coordinate{Latitude: 40.7282, Longitude: -73.7949}},
	{Name: "Richmond Hill, NY", Coordinate: geo.Coordinate{Latitude: 40.6958, Longitude: -73.8272}},
	{Name: "Jamaica, NY", Coordinate: geo.Coordinate{Latitude: 40.7027, Longitude: -73.7890}},
	{Name: "Brooklyn, NY", Coordinate: geo.Coordinate{Latitude: 40.6782, Longitude: -73.9442}},
	{Name: "Bronx, NY", Coordinate: geo.Coordinate{Latitude: 40.8448, Longitude: -73.8648}},
	{Name: "Schenectady, NY", Coordinate: geo.Coordinate{Latitude: 42.8142, Longitude: -73.9396}},
	{Name: "Toronto, ON", Coordinate: geo.Coordinate{Latitude: 43.6532, Longitude: -79.3832}},
	{Name: "Scarborough, ON", Coordinate: geo.Coordinate{Latitude: 43.7764, Longitude: -79.2318}},
	{Name: "Brampton, ON", Coordinate: geo.Coordinate{Latitude: 43.7315, Longitude: -79.7624}},
	{Name: "Mississauga, ON", Coordinate: geo.Coordinate{Latitude: 43.5890, Longitude: -79.6441}},
	{Name: "Montreal, QC", Coordinate: geo.Coordinate{Latitude: 45.5017, Longitude: -73.5673}},
	{Name: "Miami, FL", Coordinate: geo.Coordinate{Latitude: 25.7617, Longitude: -80.1918}},
	{Name: "Fort Lauderdale, FL", Coordinate: geo.Coordinate{Latitude: 26.1224, Longitude: -80.1373}},
	{Name: "Orlando, FL", Coordinate: geo.Coordinate{Latitude: 28.5383, Longitude: -81.3792}},
	{Name: "Atlanta, GA", Coordinate: geo.Coordinate{Latitude: 33.7490, Longitude: -84.3880}},
	{Name: "Houston, TX", Coordinate: geo.Coordinate{Latitude: 29.7604, Longitude: -95.3698}},
	{Name: "Washington, DC", Coordinate: geo.Coordinate{Latitude: 38.9072, Longitude: -77.0369}},
	{Name: "Newark, NJ", Coordinate: geo.Coordinate{Latitude: 40.7357, Longitude: -74.1724}},
	{Name: "Hartford, CT", Coordinate: geo.Coordinate{Latitude: 41.7658, Longitude: -72.6734}},
	{Name: "Boston, MA", Coordinate: geo.Coordinate{Latitude: 42.3601, Longitude: -71.0589}},
	{Name: "London, UK", Coordinate: geo.Coordinate{Latitude: 51.5074, Longitude: -0.1278}},
	{Name: "Birmingham, UK", Coordinate: geo.Coordinate{Latitude: 52.4862, Longitude: -1.8904}},
	{Name: "Port of Spain, Trinidad and Tobago", Coordinate: geo.Coordinate{Latitude: 10.6549, Longitude: -61.5019}},
	{Name: "Bridgetown, Barbados", Coordinate: geo.Coordinate{Latitude: 13.0975, Longitude: -59.6167}},
	{Name: "Kingston, Jamaica", Coordinate: geo.Coordinate{Latitude: 17.9712, Longitude: -76.7936}},
	{Name: "Paramaribo, Suriname", Coordinate: geo.Coordinate{Latitude: 5.8520, Longitude: -55.2038}},
	{Name: "Castries, Saint Lucia", Coordinate: geo.Coordinate{Latitude: 14.0101, Longitude: -60.9875}},
	{Name: "St. George's, Grenada", Coordinate: geo.Coordinate{Latitude: 12.0561, Longitude: -61.7488}},
}

// Builtin returns the registry compiled into the binary.
func Builtin() *Registry {
	r, err := NewRegistry(DefaultPlace, builtinPlaces)
	if err != nil {
		panic("places: invalid builtin registry: " + err.Error())
	}
	return r
}
