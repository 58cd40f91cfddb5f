package shared

// APIError is the uniform error shape surfaced to presentation clients,
// regardless of whether the underlying failure was an HTTP status, a
// malformed payload or a dead network.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// StatusCarrier is implemented by typed client errors that know the HTTP
// status they originated from.
type StatusCarrier interface {
	error
	StatusCode() int
}

// ToAPIError normalises any error into an APIError. Typed client errors
// keep their message and status; anything else gets the fallback message.
func ToAPIError(err error, fallback string) *APIError {
	if err == nil {
		return nil
	}
	if sc, ok := err.(StatusCarrier); ok {
		return &APIError{Message: sc.Error(), Status: sc.StatusCode()}
	}
	return &APIError{Message: fallback}
}
