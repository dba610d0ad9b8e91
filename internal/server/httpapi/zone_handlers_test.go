package httpapi

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultipartRequest(t *testing.T, data string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if data != "" {
		require.NoError(t, w.WriteField("data", data))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "zone.jpg")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestReadMultipart_DataOnly(t *testing.T) {
	body, contentType := newMultipartRequest(t, `{"region":"Seoul"}`, nil)
	r := httptest.NewRequest("POST", "/zones", body)
	r.Header.Set("Content-Type", contentType)

	var req zoneRequest
	upload, code := readMultipart(r, &req)
	require.Nil(t, code)
	assert.Nil(t, upload)
	assert.Equal(t, "Seoul", req.Region)
}

func TestReadMultipart_WithImage(t *testing.T) {
	body, contentType := newMultipartRequest(t, `{"region":"Seoul"}`, []byte("jpegdata"))
	r := httptest.NewRequest("POST", "/zones", body)
	r.Header.Set("Content-Type", contentType)

	var req zoneRequest
	upload, code := readMultipart(r, &req)
	require.Nil(t, code)
	require.NotNil(t, upload)
	assert.Equal(t, "zone.jpg", upload.Name)
	assert.Equal(t, []byte("jpegdata"), upload.Data)
}

func TestReadMultipart_Errors(t *testing.T) {
	t.Run("missing data part", func(t *testing.T) {
		body, contentType := newMultipartRequest(t, "", nil)
		r := httptest.NewRequest("POST", "/zones", body)
		r.Header.Set("Content-Type", contentType)

		var req zoneRequest
		_, code := readMultipart(r, &req)
		require.NotNil(t, code)
		assert.Equal(t, "V002", code.Code)
	})

	t.Run("malformed data json", func(t *testing.T) {
		body, contentType := newMultipartRequest(t, "{not json", nil)
		r := httptest.NewRequest("POST", "/zones", body)
		r.Header.Set("Content-Type", contentType)

		var req zoneRequest
		_, code := readMultipart(r, &req)
		require.NotNil(t, code)
		assert.Equal(t, "V003", code.Code)
	})

	t.Run("not multipart at all", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/zones", strings.NewReader(`{"region":"Seoul"}`))
		r.Header.Set("Content-Type", "application/json")

		var req zoneRequest
		_, code := readMultipart(r, &req)
		require.NotNil(t, code)
		assert.Equal(t, "V003", code.Code)
	})
}
