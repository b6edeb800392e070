package uploaderimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/internal/uploader"
	"github.com/dvnguyen/socialapp-client/pkg/config"
	"github.com/dvnguyen/socialapp-client/pkg/errors"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

func newTestUploader(t *testing.T, serverURL string) *UploaderImpl {
	t.Helper()

	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.Cloudinary.CloudName = "demo"
	cfg.Cloudinary.UploadPreset = "social_media_app"

	u := New(Opts{Config: cfg, Logger: logger.New(logger.Opts{})})
	u.uploadURL = serverURL
	return u
}

func TestUploadSendsMultipartWithPreset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "social_media_app", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.png", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://cdn.example.com/photo.png"})
	}))
	defer server.Close()

	u := newTestUploader(t, server.URL)
	url, err := u.Upload(context.Background(), uploader.File{
		Name:    "photo.png",
		Content: strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photo.png", url)
}

func TestUploadMissingSecureURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	u := newTestUploader(t, server.URL)
	_, err := u.Upload(context.Background(), uploader.File{Name: "a.png", Content: strings.NewReader("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_url")
}

func TestUploadAllPreservesOrder(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://cdn.example.com/" + header.Filename,
		})
	}))
	defer server.Close()

	u := newTestUploader(t, server.URL)
	files := []uploader.File{
		{Name: "1.png", Content: strings.NewReader("a")},
		{Name: "2.png", Content: strings.NewReader("b")},
		{Name: "3.png", Content: strings.NewReader("c")},
		{Name: "4.png", Content: strings.NewReader("d")},
	}

	urls, err := u.UploadAll(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example.com/1.png",
		"https://cdn.example.com/2.png",
		"https://cdn.example.com/3.png",
		"https://cdn.example.com/4.png",
	}, urls, "results follow input order regardless of completion order")
	assert.Equal(t, int32(4), calls.Load())
}

func TestUploadAllCapEnforcedBeforeNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made for an oversized batch")
	}))
	defer server.Close()

	u := newTestUploader(t, server.URL)
	files := make([]uploader.File, domain.MaxPostImages+1)
	for i := range files {
		files[i] = uploader.File{Name: fmt.Sprintf("%d.png", i), Content: strings.NewReader("x")}
	}

	_, err := u.UploadAll(context.Background(), files)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, "too_many_images", errors.GetCode(err))
}

func TestUploadAllEmptyBatch(t *testing.T) {
	u := newTestUploader(t, "http://unused.invalid")
	urls, err := u.UploadAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, urls)
}

func TestUploadAllFailsOnAnyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		if header.Filename == "2.png" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://cdn.example.com/" + header.Filename})
	}))
	defer server.Close()

	u := newTestUploader(t, server.URL)
	files := []uploader.File{
		{Name: "1.png", Content: strings.NewReader("a")},
		{Name: "2.png", Content: strings.NewReader("b")},
	}

	_, err := u.UploadAll(context.Background(), files)
	require.Error(t, err)
}
