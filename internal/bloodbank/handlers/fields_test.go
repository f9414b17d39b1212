package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFieldsJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Asha","age":29,"city":null,"units":2.5}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	f, err := readFields(req)
	require.NoError(t, err)
	assert.Equal(t, "Asha", f.Get("name"))
	assert.Equal(t, "29", f.Get("age"))
	assert.Equal(t, "2.5", f.Get("units"))
	assert.Nil(t, f.Get("city"))
	assert.Nil(t, f.Get("contact"))
}

func TestReadFieldsMalformedJSON(t *testing.T) {
	bodies := []string{
		"",
		"{",
		`{"name": "Asha",`,
		"[1,2]",
		`"Asha"`,
		`{"name":"Asha"} {"name":"Ravi"}`,
		`{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f, err := readFields(req)
		assert.ErrorIs(t, err, errMalformedBody)
		assert.Nil(t, f)
	}
}

func TestReadFieldsJSONNullIsEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("null"))
	req.Header.Set("Content-Type", "application/json")

	f, err := readFields(req)
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestReadFieldsURLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Ravi&age=&name=ignored"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f, err := readFields(req)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", f.Get("name"))
	assert.Equal(t, "", f.Get("age"))
	assert.Nil(t, f.Get("city"))
}

func TestReadFieldsMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", "admin"))
	require.NoError(t, mw.WriteField("password", "admin123"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	f, err := readFields(req)
	require.NoError(t, err)
	assert.Equal(t, "admin", f.Get("username"))
	assert.Equal(t, "admin123", f.Get("password"))
}

func TestReadFieldsQueryStringIsNotBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/?status=fulfilled", nil)
	f, err := readFields(req)
	require.NoError(t, err)
	assert.Nil(t, f.Get("status"))
}
