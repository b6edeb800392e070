package uploaderimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/dvnguyen/socialapp-client/internal/domain"
	"github.com/dvnguyen/socialapp-client/internal/uploader"
	"github.com/dvnguyen/socialapp-client/pkg/config"
	"github.com/dvnguyen/socialapp-client/pkg/errors"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

const uploadConcurrency = 3

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type UploaderImpl struct {
	uploadURL    string
	uploadPreset string
	http         *http.Client
	logger       logger.Logger
}

func New(opts Opts) *UploaderImpl {
	return &UploaderImpl{
		uploadURL: fmt.Sprintf(
			"https://api.cloudinary.com/v1_1/%s/image/upload",
			opts.Config.Cloudinary.CloudName,
		),
		uploadPreset: opts.Config.Cloudinary.UploadPreset,
		http:         &http.Client{Timeout: opts.Config.API.Timeout},
		logger:       opts.Logger.WithComponent("Uploader"),
	}
}

var _ uploader.Client = (*UploaderImpl)(nil)

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

func (u *UploaderImpl) Upload(ctx context.Context, file uploader.File) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", file.Name, err)
	}
	if err := writer.WriteField("upload_preset", u.uploadPreset); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload of %s failed with status %d", file.Name, resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if parsed.SecureURL == "" {
		return "", fmt.Errorf("upload response for %s missing secure_url", file.Name)
	}
	return parsed.SecureURL, nil
}

func (u *UploaderImpl) UploadAll(ctx context.Context, files []uploader.File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > domain.MaxPostImages {
		return nil, errors.WrapWithCode(
			errors.ErrValidation,
			"too_many_images",
			fmt.Sprintf("you can upload maximum %d images per post", domain.MaxPostImages),
		)
	}

	pool, err := ants.NewPool(uploadConcurrency, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	for i, file := range files {
		wg.Add(1)
		idx, f := i, file

		if submitErr := pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
			default:
				urls[idx], errs[idx] = u.Upload(ctx, f)
			}
		}); submitErr != nil {
			wg.Done()
			errs[idx] = fmt.Errorf("failed to submit upload job: %w", submitErr)
		}
	}

	wg.Wait()

	for i, e := range errs {
		if e != nil {
			u.logger.Error("Image upload failed", "file", files[i].Name, "error", e)
			return nil, e
		}
	}

	u.logger.Info("Uploaded images", "count", len(urls))
	return urls, nil
}
