package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/remote"
)

const maxErrorBody = 4096

type apiError struct {
	Message string `json:"message"`
}

// statusToErr maps a non-2xx response to a client error. The backend puts a
// human message under "message"; fall back to the raw body when it doesn't.
func statusToErr(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(body))
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Message != "" {
		msg = ae.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", remote.ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", remote.ErrNotFound, msg)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
}

func (api *RESTBlogAPI) endpoint(path string, query url.Values) string {
	u := api.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do paces the request through the client-side limiter, executes it, and
// normalizes non-2xx statuses. Callers must close the response body on nil
// error.
func (api *RESTBlogAPI) do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	if err := api.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, statusToErr(resp)
	}
	return resp, nil
}

func (api *RESTBlogAPI) getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := api.do(ctx, client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (api *RESTBlogAPI) postJSON(ctx context.Context, client *http.Client, rawURL string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, rawURL, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := api.do(ctx, client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (api *RESTBlogAPI) delete(ctx context.Context, client *http.Client, rawURL string) error {
	req, err := http.NewRequest(http.MethodDelete, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := api.do(ctx, client, req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// multipartForm assembles the backend's mixed upload format: a JSON blob
// under jsonField plus an optional binary image part.
func multipartForm(jsonField string, payload any, imageName string, image []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, "", err
		}
		if err := w.WriteField(jsonField, string(b)); err != nil {
			return nil, "", err
		}
	}

	if image != nil {
		if imageName == "" {
			imageName = "image"
		}
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(image); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func profileForm(update models.ProfileUpdate) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if update.Bio != "" {
		if err := w.WriteField("bio", update.Bio); err != nil {
			return nil, "", err
		}
	}

	if update.Image != nil {
		name := update.ImageName
		if name == "" {
			name = "image"
		}
		part, err := w.CreateFormFile("image", name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(update.Image); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (api *RESTBlogAPI) sendMultipart(ctx context.Context, method string, rawURL string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequest(method, rawURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := api.do(ctx, api.authed, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
