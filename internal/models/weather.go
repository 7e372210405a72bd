package models

// WeatherSnapshot is the reduced view of a provider's current-weather payload.
// Fields the provider omitted stay nil and are left out of the JSON.
type WeatherSnapshot struct {
	City      *string  `json:"city,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Temp      *float64 `json:"temp,omitempty"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty"`
	Weather   *string  `json:"weather,omitempty"`
	Icon      *string  `json:"icon,omitempty"`
}
