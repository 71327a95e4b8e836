package glances

import "fmt"

type FetchErrorKind string

const (
	FetchTimeout  FetchErrorKind = "timeout"
	FetchUpstream FetchErrorKind = "upstream"
)

// FetchError is the classified failure of one agent fetch.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Detail string
	Err    error
}

func (e *FetchError) Error() string {
	return e.Detail
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Timeout() bool {
	return e.Kind == FetchTimeout
}

func timeoutError(baseURL, fullURL string, err error) *FetchError {
	return &FetchError{
		Kind:   FetchTimeout,
		URL:    fullURL,
		Detail: fmt.Sprintf("Timeout fetching data from Glances API: %s", baseURL),
		Err:    err,
	}
}

func upstreamError(fullURL string, err error) *FetchError {
	return &FetchError{
		Kind:   FetchUpstream,
		URL:    fullURL,
		Detail: fmt.Sprintf("Error fetching data from Glances API: %v", err),
		Err:    err,
	}
}
