package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"time"
)

// Request describes one call for the Executor. It lives for a single call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is marshalled as JSON. Ignored when Form is set.
	Body any
	// Form is sent as multipart/form-data.
	Form    *Form
	Header  map[string]string
	Timeout time.Duration
}

// Form is a multipart payload.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// FormFile is one file part of a Form.
type FormFile struct {
	Field    string
	FileName string
	Content  io.Reader
}

// encode returns the body reader and the content type it needs, if any.
func (r *Request) encode() (io.Reader, string, error) {
	if r.Form != nil {
		return r.Form.encode()
	}
	if r.Body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, file := range f.Files {
		part, err := writer.CreateFormFile(file.Field, file.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copying file: %w", err)
		}
	}
	for name, value := range f.Fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
