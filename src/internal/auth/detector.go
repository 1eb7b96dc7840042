package auth

import (
	"strings"

	"kennelhub-session-svc/src/internal/models"
)

// ssoLoginPathMarker identifies a CAS-style single-sign-on login page.
const ssoLoginPathMarker = "/cas/login"

// DetectProtocol classifies a fetched login page as SSO or standard form
// login. Absence of the SSO marker is the standard classification, not an
// error.
func DetectProtocol(body, finalUrl string) string {
	if strings.Contains(finalUrl, ssoLoginPathMarker) || strings.Contains(body, ssoLoginPathMarker) {
		return models.LoginMethodSSO
	}
	return models.LoginMethodStandard
}
