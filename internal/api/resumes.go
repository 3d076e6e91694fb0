package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// Upload submits a resume file for asynchronous parsing. The caller is
// responsible for client-side validation; the backend enforces its own
// size and type limits as well.
func (c *Client) Upload(ctx context.Context, filename string, contentType string, file io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+"/resumes/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := decodeJSON(resp.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ParseStatus returns the parsing status of an uploaded resume.
func (c *Client) ParseStatus(ctx context.Context, id uuid.UUID) (*ParseStatus, error) {
	var status ParseStatus
	if err := c.doJSON(ctx, http.MethodGet, "/resumes/parse-status/"+id.String(), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetResume fetches the flat resume record.
func (c *Client) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var resume Resume
	if err := c.doJSON(ctx, http.MethodGet, "/resumes/"+id.String(), nil, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// GetResumeComplete fetches the resume with all its sections.
func (c *Client) GetResumeComplete(ctx context.Context, id uuid.UUID) (*ResumeComplete, error) {
	var resume ResumeComplete
	if err := c.doJSON(ctx, http.MethodGet, "/resumes/"+id.String()+"/complete", nil, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// GetActiveResume fetches the most recently uploaded resume.
func (c *Client) GetActiveResume(ctx context.Context) (*Resume, error) {
	var resume Resume
	if err := c.doJSON(ctx, http.MethodGet, "/resumes/active", nil, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// ListResumes returns the user's resumes, most recent first.
// The backend caps limit at 100; zero values fall back to server defaults.
func (c *Client) ListResumes(ctx context.Context, limit, offset int) ([]ResumeListItem, error) {
	path := "/resumes"
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var items []ResumeListItem
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateResume creates a resume from manual data entry.
// The backend returns 409 when the version name is already taken.
func (c *Client) CreateResume(ctx context.Context, req *CreateResumeRequest) (*Resume, error) {
	var resume Resume
	if err := c.doJSON(ctx, http.MethodPost, "/resumes", req, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// UpdateResume partially updates a resume. Only non-nil fields are sent.
func (c *Client) UpdateResume(ctx context.Context, id uuid.UUID, req *UpdateResumeRequest) (*Resume, error) {
	var resume Resume
	if err := c.doJSON(ctx, http.MethodPut, "/resumes/"+id.String(), req, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// DuplicateResume copies a resume with all its sections.
// newVersionName is optional; empty means the backend picks a unique name.
func (c *Client) DuplicateResume(ctx context.Context, id uuid.UUID, newVersionName string) (*Resume, error) {
	path := "/resumes/" + id.String() + "/duplicate"
	if newVersionName != "" {
		path += "?new_version_name=" + url.QueryEscape(newVersionName)
	}

	var resume Resume
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// DeleteResume permanently deletes a resume and its sections.
func (c *Client) DeleteResume(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/resumes/"+id.String(), nil, nil)
}

// DeleteAllResumes permanently deletes every resume for the current user.
func (c *Client) DeleteAllResumes(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/resumes/all", nil, nil)
}

// DownloadPDF fetches the rendered PDF for a resume. The filename comes
// from the Content-Disposition header, falling back to "resume.pdf".
func (c *Client) DownloadPDF(ctx context.Context, id uuid.UUID) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPrefix+"/resumes/"+id.String()+"/download", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF body: %w", err)
	}

	return &Download{
		Filename:    filenameFromDisposition(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// filenameFromDisposition extracts the attachment filename, if any.
func filenameFromDisposition(disposition string) string {
	const fallback = "resume.pdf"
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}
	if name := params["filename"]; name != "" {
		return name
	}
	return fallback
}

// decodeJSON decodes a JSON body with a consistent error message.
func decodeJSON(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
