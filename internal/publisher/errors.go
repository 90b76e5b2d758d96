package publisher

import "fmt"

type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("Platform %s not supported", e.Platform)
}

// UnsupportedOperationError reports a capability the platform client
// deliberately does not implement.
type UnsupportedOperationError struct {
	Platform Platform
	Reason   string
}

func (e *UnsupportedOperationError) Error() string {
	return e.Reason
}

// PlatformError carries a non-2xx response from a social network verbatim.
type PlatformError struct {
	Platform   Platform
	StatusCode int
	Body       string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s API error: %s", e.Platform.Name(), e.Body)
}

type InvalidCredentialsError struct {
	Platform Platform
	Field    string
	Reason   string
}

func (e *InvalidCredentialsError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s credentials: %s", e.Platform.Name(), e.Reason)
	}
	return fmt.Sprintf("invalid %s credentials: %s %s", e.Platform.Name(), e.Field, e.Reason)
}
