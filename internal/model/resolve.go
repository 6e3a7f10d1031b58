package model

// ResolveRequest is the body accepted by the resolve endpoint.
type ResolveRequest struct {
	URL     string `json:"url"`
	Service string `json:"service"`
}

// ResolveResponse is returned for every validated request.
// DeepLink is nil when nothing could be extracted from FinalURL.
type ResolveResponse struct {
	OriginalURL string  `json:"originalUrl"`
	FinalURL    string  `json:"finalUrl"`
	DeepLink    *string `json:"deepLink"`
}

// ErrorResponse carries an error message to the client.
type ErrorResponse struct {
	Error string `json:"error"`
}
