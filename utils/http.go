package utils

import (
	"net/http"

	"github.com/showdeck/showdeck/shared"
)

// UARoundtripper stamps every outgoing request with the service user agent
// so the catalog can tell us apart from anonymous traffic.
type UARoundtripper struct {
	RT http.RoundTripper
}

func (uart *UARoundtripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", shared.UserAgent)
	rt := uart.RT
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(req)
}

func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &UARoundtripper{},
	}
}
