package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// RemoteInstance addresses a tenant's independently hosted API.
type RemoteInstance struct {
	Name       string `json:"name"`
	BaseURL    string `json:"base_url"`
	SelfHosted bool   `json:"self_hosted"`
}

// Refreshable reports whether refresh operations may be attempted against the instance.
func (i RemoteInstance) Refreshable() bool {
	return i.SelfHosted && strings.TrimSpace(i.BaseURL) != ""
}

func (i RemoteInstance) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &ValidationError{Field: "instance name", Reason: "name is required"}
	}
	if strings.TrimSpace(i.BaseURL) == "" {
		if i.SelfHosted {
			return &ValidationError{Field: "base url", Reason: "self-hosted instances need a base url"}
		}
		return nil
	}

	parsed, err := url.Parse(i.BaseURL)
	if err != nil {
		return &ValidationError{Field: "base url", Reason: fmt.Sprintf("parse %q: %v", i.BaseURL, err), Err: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "base url", Reason: "must use http or https"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "base url", Reason: "host is required"}
	}

	return nil
}
