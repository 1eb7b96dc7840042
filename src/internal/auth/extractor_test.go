package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const casFormFixture = `
<html><body>
<form id="fm1" action="/cas/login;jsessionid=E1" method="post">
  <input type="text" name="username" value="" />
  <input type="password" name="password" value="" />
  <input type="hidden" name="lt" value="LT-1" />
  <input type="hidden" name="execution" value="e1s1" />
  <input type="hidden" name="_eventId" value="submit" />
  <input type="submit" value="LOGIN" />
</form>
</body></html>`

func TestHiddenFields(t *testing.T) {
	extractor := NewFieldExtractor()

	fields := extractor.HiddenFields(casFormFixture)

	assert.Equal(t, map[string]string{
		"lt":        "LT-1",
		"execution": "e1s1",
		"_eventId":  "submit",
	}, fields)
}

func TestHiddenFieldsAttributeOrderIndependent(t *testing.T) {
	extractor := NewFieldExtractor()

	html := `<input name="csrf" type="hidden" value="abc">`
	fields := extractor.HiddenFields(html)

	assert.Equal(t, map[string]string{"csrf": "abc"}, fields)
}

func TestHiddenFieldsEmptyOnPlainPage(t *testing.T) {
	extractor := NewFieldExtractor()

	fields := extractor.HiddenFields(`<p>no forms here</p>`)

	assert.Empty(t, fields)
}

func TestFormAction(t *testing.T) {
	extractor := NewFieldExtractor()

	assert.Equal(t, "/cas/login;jsessionid=E1", extractor.FormAction(casFormFixture, "/fallback"))
}

func TestFormActionFallsBack(t *testing.T) {
	extractor := NewFieldExtractor()

	assert.Equal(t, "/fallback", extractor.FormAction(`<form method="post">`, "/fallback"))
	assert.Equal(t, "/fallback", extractor.FormAction(`<p>no form</p>`, "/fallback"))
}

func TestGuessFieldName(t *testing.T) {
	extractor := NewFieldExtractor()

	assert.Equal(t, "username", extractor.GuessFieldName(casFormFixture, PurposeUsername))
	assert.Equal(t, "password", extractor.GuessFieldName(casFormFixture, PurposePassword))
}

func TestGuessFieldNameHeuristics(t *testing.T) {
	extractor := NewFieldExtractor()

	html := `
<form action="/login" method="post">
  <input type="text" name="login_user" />
  <input type="password" name="login_pass" />
</form>`

	assert.Equal(t, "login_user", extractor.GuessFieldName(html, PurposeUsername))
	assert.Equal(t, "login_pass", extractor.GuessFieldName(html, PurposePassword))
}

func TestGuessFieldNameDefaults(t *testing.T) {
	extractor := NewFieldExtractor()

	html := `<form action="/login"><input type="text" name="field1"></form>`

	assert.Equal(t, "username", extractor.GuessFieldName(html, PurposeUsername))
	assert.Equal(t, "password", extractor.GuessFieldName(html, PurposePassword))
}

func TestGuessFieldNameSkipsHiddenInputs(t *testing.T) {
	extractor := NewFieldExtractor()

	html := `
<form action="/login">
  <input type="hidden" name="last_user" value="x">
  <input type="text" name="user_name">
</form>`

	assert.Equal(t, "user_name", extractor.GuessFieldName(html, PurposeUsername))
}
