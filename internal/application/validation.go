package application

import "strings"

const linkedInDomain = "linkedin.com"

func validateLinkedIn(vErr *ValidationError, field, url string) {
	url = strings.TrimSpace(url)
	switch {
	case url == "":
		vErr.add(field, "LinkedIn URL is required")
	case !strings.Contains(strings.ToLower(url), linkedInDomain):
		vErr.add(field, "enter a valid LinkedIn URL")
	}
}

func validateSessionInput(params CreateSessionParams) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(params.DeviceID) == "" {
		vErr.add("deviceId", "device id is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		vErr.add("name", "name is required")
	}
	validateLinkedIn(vErr, "linkedInUrl", params.LinkedInURL)
	return vErr
}
