package tvmaze

// Kind distinguishes where a catalog request went wrong.
type Kind string

const (
	// KindTransport covers non-2xx responses; Status carries the code.
	KindTransport Kind = "transport"
	// KindValidation covers well-formed bodies of the wrong shape.
	KindValidation Kind = "validation"
	// KindNetwork covers everything else thrown during the request.
	KindNetwork Kind = "network"
)

// Error is the one typed error the client raises. Callers never see raw
// transport or decoding failures.
type Error struct {
	Kind    Kind
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// StatusCode reports the originating HTTP status, zero when there was none.
func (e *Error) StatusCode() int {
	return e.Status
}
