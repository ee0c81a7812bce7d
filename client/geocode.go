package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const nominatimURL = "https://nominatim.openstreetmap.org/reverse"

// Geocoder resolves coordinates to addresses using the OpenStreetMap
// Nominatim service. Single-attempt: a failed lookup surfaces to the caller.
type Geocoder struct {
	baseURL string
	http    *http.Client
}

func NewGeocoder(httpClient *http.Client) *Geocoder {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Geocoder{baseURL: nominatimURL, http: httpClient}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road          string `json:"road"`
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		CityDistrict  string `json:"city_district"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		State         string `json:"state"`
		Postcode      string `json:"postcode"`
	} `json:"address"`
}

// ReverseGeocode returns a formatted address for the given coordinates.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	url := fmt.Sprintf("%s?format=json&lat=%f&lon=%f&addressdetails=1", g.baseURL, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Accept-Language", "en")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	var decoded nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode geocode response: %w", err)
	}

	parts := []string{
		firstNonEmpty(decoded.Address.Road, decoded.Address.Neighbourhood),
		firstNonEmpty(decoded.Address.Suburb, decoded.Address.CityDistrict),
		firstNonEmpty(decoded.Address.City, decoded.Address.Town, decoded.Address.Village),
		decoded.Address.State,
		decoded.Address.Postcode,
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	formatted := strings.Join(nonEmpty, ", ")
	if formatted == "" {
		formatted = decoded.DisplayName
	}
	if formatted == "" {
		return "", fmt.Errorf("geocode service returned no address")
	}
	return formatted, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
