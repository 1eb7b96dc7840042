package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"kennelhub-session-svc/src/internal/config"
	"kennelhub-session-svc/src/internal/models"
)

// LoginResult is the outcome of a successful login: the finalized cookie
// header and the flow that produced it.
type LoginResult struct {
	Cookies string
	Method  string
}

// Authenticator performs a full login against the target site.
type Authenticator interface {
	Login(ctx context.Context) (*LoginResult, error)
}

type httpAuthenticator struct {
	cfg       *config.TargetSite
	extractor FieldExtractor
}

// NewAuthenticator creates an authenticator for the configured target site.
func NewAuthenticator(cfg *config.TargetSite, extractor FieldExtractor) Authenticator {
	return &httpAuthenticator{
		cfg:       cfg,
		extractor: extractor,
	}
}

// page is a fetched HTML page together with its final resolved URL.
type page struct {
	body     string
	finalUrl string
	status   int
}

// loginStrategy runs the branch-specific steps after protocol detection.
// Both branches share the fetched login page and the accumulating jar.
type loginStrategy interface {
	run(ctx context.Context, loginPage *page, jar *CookieJar) error
}

func (a *httpAuthenticator) Login(ctx context.Context) (*LoginResult, error) {
	jar := NewCookieJar()

	loginPage, err := a.get(ctx, a.browseClient(jar), a.cfg.LoginUrl, jar)
	if err != nil {
		return nil, loginFailed("fetching login page: %v", err)
	}

	if loginPage.status < 200 || loginPage.status >= 300 {
		return nil, loginFailed("login page returned status %d", loginPage.status)
	}

	method := DetectProtocol(loginPage.body, loginPage.finalUrl)
	logrus.WithFields(logrus.Fields{
		"login_method": method,
		"final_url":    loginPage.finalUrl,
	}).Debug("Login flow detected")

	var strategy loginStrategy
	if method == models.LoginMethodSSO {
		strategy = &ssoLogin{a}
	} else {
		strategy = &standardLogin{a}
	}

	if err := strategy.run(ctx, loginPage, jar); err != nil {
		return nil, err
	}

	logrus.WithField("login_method", method).Info("Authenticated against target site")

	return &LoginResult{
		Cookies: jar.Serialize(),
		Method:  method,
	}, nil
}

// ssoLogin executes the CAS-style branch: fetch the SSO form page, replay its
// hidden fields with the credentials, then follow exactly one redirect.
type ssoLogin struct {
	a *httpAuthenticator
}

func (s *ssoLogin) run(ctx context.Context, _ *page, jar *CookieJar) error {
	a := s.a

	ssoUrl := a.cfg.SsoLoginUrl
	if a.cfg.ServiceUrl != "" {
		ssoUrl += "?service=" + url.QueryEscape(a.cfg.ServiceUrl)
	}

	formPage, err := a.get(ctx, a.browseClient(jar), ssoUrl, jar)
	if err != nil {
		return loginFailed("fetching sso form page: %v", err)
	}

	if formPage.status < 200 || formPage.status >= 300 {
		return loginFailed("sso form page returned status %d", formPage.status)
	}

	form := url.Values{}
	for name, value := range a.extractor.HiddenFields(formPage.body) {
		form.Set(name, value)
	}
	form.Set(a.extractor.GuessFieldName(formPage.body, PurposeUsername), a.cfg.Username)
	form.Set(a.extractor.GuessFieldName(formPage.body, PurposePassword), a.cfg.Password)

	action := resolveUrl(formPage.finalUrl, a.extractor.FormAction(formPage.body, formPage.finalUrl))

	status, location, err := a.submitForm(ctx, action, form, jar)
	if err != nil {
		return loginFailed("submitting sso form: %v", err)
	}

	if status < 300 || status >= 400 || location == "" {
		return loginFailed("sso form submit returned status %d", status)
	}

	// One confirmation hop only, never a full redirect chain.
	if _, err := a.get(ctx, a.noRedirectClient(), resolveUrl(action, location), jar); err != nil {
		return loginFailed("following sso redirect: %v", err)
	}

	return nil
}

// standardLogin executes the direct form POST branch against the original
// login page.
type standardLogin struct {
	a *httpAuthenticator
}

func (s *standardLogin) run(ctx context.Context, loginPage *page, jar *CookieJar) error {
	a := s.a

	form := url.Values{}
	for name, value := range a.extractor.HiddenFields(loginPage.body) {
		form.Set(name, value)
	}
	form.Set(a.extractor.GuessFieldName(loginPage.body, PurposeUsername), a.cfg.Username)
	form.Set(a.extractor.GuessFieldName(loginPage.body, PurposePassword), a.cfg.Password)
	form.Set("submit", "Login")
	form.Set("remember", "on")

	action := resolveUrl(loginPage.finalUrl, a.extractor.FormAction(loginPage.body, a.cfg.LoginUrl))

	status, _, err := a.submitForm(ctx, action, form, jar)
	if err != nil {
		return loginFailed("submitting login form: %v", err)
	}

	if status != http.StatusOK && (status < 300 || status >= 400) {
		return loginFailed("login form submit returned status %d", status)
	}

	return nil
}

// browseClient follows redirects, merging the cookies of every intermediate
// response into the jar and replaying the accumulated jar on each hop.
func (a *httpAuthenticator) browseClient(jar *CookieJar) *http.Client {
	return &http.Client{
		Timeout: a.timeout(),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			if req.Response != nil {
				jar.MergeResponse(req.Response)
			}
			if !jar.Empty() {
				req.Header.Set("Cookie", jar.Serialize())
			}
			req.Header.Set("User-Agent", a.cfg.UserAgent)
			return nil
		},
	}
}

// noRedirectClient returns each response as-is so cookies can be merged
// between hops.
func (a *httpAuthenticator) noRedirectClient() *http.Client {
	return &http.Client{
		Timeout: a.timeout(),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *httpAuthenticator) get(ctx context.Context, client *http.Client, rawUrl string, jar *CookieJar) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", a.cfg.UserAgent)
	if !jar.Empty() {
		req.Header.Set("Cookie", jar.Serialize())
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	jar.MergeResponse(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &page{
		body:     string(body),
		finalUrl: resp.Request.URL.String(),
		status:   resp.StatusCode,
	}, nil
}

func (a *httpAuthenticator) submitForm(ctx context.Context, action string, form url.Values, jar *CookieJar) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, action, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", a.cfg.UserAgent)
	if !jar.Empty() {
		req.Header.Set("Cookie", jar.Serialize())
	}

	resp, err := a.noRedirectClient().Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	jar.MergeResponse(resp)

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return 0, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, resp.Header.Get("Location"), nil
}

func (a *httpAuthenticator) timeout() time.Duration {
	return time.Duration(a.cfg.Timeout) * time.Second
}

// resolveUrl resolves ref against base, falling back to ref untouched when
// either does not parse.
func resolveUrl(base, ref string) string {
	baseUrl, err := url.Parse(base)
	if err != nil {
		return ref
	}

	refUrl, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return baseUrl.ResolveReference(refUrl).String()
}

func loginFailed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrLoginFailed, fmt.Sprintf(format, args...))
}
