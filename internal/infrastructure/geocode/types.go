package geocode

// googleGeocodeResponse is the wire shape of the Google Geocoding API
type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress  string                   `json:"formatted_address"`
	AddressComponents []googleAddressComponent `json:"address_components"`
	Geometry          googleGeometry           `json:"geometry"`
}

type googleAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type googleGeometry struct {
	Location googleLatLng `json:"location"`
}

type googleLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// pincodeResponse is the wire shape of the postal pincode lookup API.
// The API returns a single-element array wrapping the actual payload.
type pincodeResponse struct {
	Message    string          `json:"Message"`
	Status     string          `json:"Status"`
	PostOffice []pincodeOffice `json:"PostOffice"`
}

type pincodeOffice struct {
	Name     string `json:"Name"`
	District string `json:"District"`
	State    string `json:"State"`
	Country  string `json:"Country"`
	Pincode  string `json:"Pincode"`
}
