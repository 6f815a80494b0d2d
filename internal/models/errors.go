package models

import "fmt"

// ErrMissingProviderConfig signals that an operation targeted a provider the
// configuration has no connection entry for. It is raised before any network
// call is attempted.
type ErrMissingProviderConfig struct {
	Provider Provider
}

func NewMissingProviderConfigError(p Provider) error {
	return &ErrMissingProviderConfig{Provider: p}
}

func (e *ErrMissingProviderConfig) Error() string {
	return fmt.Sprintf("no configuration for provider: %v", e.Provider)
}

// ErrBadStatus signals a non-2xx provider response. The body is kept
// verbatim, providers put their diagnostics there.
type ErrBadStatus struct {
	Status string
	Body   string
}

func NewBadStatusError(status, body string) error {
	return &ErrBadStatus{Status: status, Body: body}
}

func (e *ErrBadStatus) Error() string {
	return fmt.Sprintf("unexpected status code: %v, body: %v", e.Status, e.Body)
}
