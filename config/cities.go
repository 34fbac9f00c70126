package config

// City represents a city configuration
type City struct {
	Name      string    `json:"name"`
	Center    []float64 `json:"center"`
	ZoomLevel int       `json:"zoom_level"`
}

// SupportedCities is the list of fallback map centers. The default viewport
// uses one of these when the result set has no mappable property.
var SupportedCities = []City{
	{
		Name:      "madrid",
		Center:    []float64{40.416775, -3.703790},
		ZoomLevel: 7,
	},
	{
		Name:      "barcelona",
		Center:    []float64{41.385063, 2.173404},
		ZoomLevel: 7,
	},
	{
		Name:      "valencia",
		Center:    []float64{39.469907, -0.376288},
		ZoomLevel: 7,
	},
	{
		Name:      "sevilla",
		Center:    []float64{37.389092, -5.984459},
		ZoomLevel: 7,
	},
	// Add more cities here as needed
}

// GetCityNames returns a list of supported city names
func GetCityNames() []string {
	names := make([]string, len(SupportedCities))
	for i, city := range SupportedCities {
		names[i] = city.Name
	}
	return names
}

// GetCityByName returns a city configuration by name; madrid when the name
// is unknown, so a misconfigured default never loses the map.
func GetCityByName(name string) *City {
	for _, city := range SupportedCities {
		if city.Name == name {
			return &city
		}
	}
	return &SupportedCities[0]
}
