package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "ml_default", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "pothole.jpg", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(content))

		json.NewEncoder(w).Encode(map[string]string{"public_id": "reports/pothole"})
	}))
	defer srv.Close()

	u := NewUploader("demo", "ml_default", nil)
	u.baseURL = srv.URL

	url, err := u.UploadImage(context.Background(), "pothole.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/w_800,h_600,c_limit,q_auto:good,f_auto/reports/pothole", url)
}

func TestUploadImage_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Invalid upload preset"},
		})
	}))
	defer srv.Close()

	u := NewUploader("demo", "bad-preset", nil)
	u.baseURL = srv.URL

	_, err := u.UploadImage(context.Background(), "pothole.jpg", strings.NewReader("bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid upload preset")
}
