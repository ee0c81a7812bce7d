package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Uploader pushes report images to Cloudinary via unsigned upload and
// returns an optimized delivery URL. Single-attempt: a failed upload
// surfaces to the caller.
type Uploader struct {
	cloudName    string
	uploadPreset string
	baseURL      string
	http         *http.Client
}

func NewUploader(cloudName, uploadPreset string, httpClient *http.Client) *Uploader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Uploader{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		baseURL:      "https://api.cloudinary.com/v1_1",
		http:         httpClient,
	}
}

type uploadResponse struct {
	PublicID string `json:"public_id"`
	Error    struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadImage uploads one image and returns its optimized delivery URL.
func (u *Uploader) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := form.WriteField("upload_preset", u.uploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	url := fmt.Sprintf("%s/%s/image/upload", u.baseURL, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := decoded.Error.Message
		if message == "" {
			message = resp.Status
		}
		return "", fmt.Errorf("upload failed: %s", message)
	}

	return u.optimizedURL(decoded.PublicID), nil
}

// optimizedURL builds a delivery URL with transformations that cap the
// rendered size and let Cloudinary pick quality and format.
func (u *Uploader) optimizedURL(publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/w_800,h_600,c_limit,q_auto:good,f_auto/%s", u.cloudName, publicID)
}
