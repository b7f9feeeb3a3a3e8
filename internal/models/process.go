package models

// ProcessResponse is the JSON body returned for a successful conversion.
type ProcessResponse struct {
	Success     bool   `json:"success"`
	Preview     string `json:"preview"`
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
}

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
