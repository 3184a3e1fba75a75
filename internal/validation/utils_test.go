package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/gestion-projet/internal/errs"
)

type testRequest struct {
	Name       string `json:"name" validate:"required"`
	CodeProjet int64  `json:"codeProjet" validate:"required"`
}

func (r *testRequest) Validate() error {
	return validator.New().Struct(r)
}

type customRequest struct {
	Name string `json:"name"`
}

func (r *customRequest) Validate() error {
	if r.Name == "admin" {
		return CustomValidationErrors{{Field: "name", Message: "is reserved"}}
	}
	return nil
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate(t *testing.T) {
	var req testRequest
	require.NoError(t, BindAndValidate(newContext(`{"name":"a","codeProjet":3}`), &req))
	assert.Equal(t, testRequest{Name: "a", CodeProjet: 3}, req)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":`), &testRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_TypeMismatch(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":"a","codeProjet":"trois"}`), &testRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidate_MissingFields(t *testing.T) {
	err := BindAndValidate(newContext(`{}`), &testRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "codeProjet", Error: "is required"},
	}, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":"admin"}`), &customRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is reserved"}}, httpErr.Errors)
}
