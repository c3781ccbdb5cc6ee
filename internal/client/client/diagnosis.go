package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
)

func (g *Gateway) Diagnose(ctx context.Context, symptoms string) (*DiagnosisResponse, error) {
	if strings.TrimSpace(symptoms) == "" {
		return nil, fmt.Errorf("%w: symptoms are required", ErrInvalidArgument)
	}
	var resp DiagnosisResponse
	if err := g.post(ctx, "/api/diagnose", map[string]string{"symptoms": symptoms}, g.timeouts.Diagnose, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DiagnoseImage uploads image as the multipart field "image" with optional
// symptoms text.
func (g *Gateway) DiagnoseImage(ctx context.Context, image io.Reader, fileName, symptoms string) (*ImageDiagnosisResponse, error) {
	if image == nil || fileName == "" {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidArgument)
	}
	if !IsSupportedImage(fileName) {
		return nil, fmt.Errorf("%w: unsupported image type %q", ErrInvalidArgument, path.Ext(fileName))
	}
	req := Request{
		Method: http.MethodPost,
		Path:   "/api/diagnose-image",
		Form: &Form{
			Fields: map[string]string{"symptoms": symptoms},
			Files:  []FormFile{{Field: "image", FileName: fileName, Content: image}},
		},
		Timeout: g.timeouts.DiagnoseImage,
	}
	var resp ImageDiagnosisResponse
	if err := g.exec.Do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) DiagnosisHistory(ctx context.Context, page, perPage int) (*DiagnosisHistoryPage, error) {
	var resp DiagnosisHistoryPage
	req := Request{
		Method:  http.MethodGet,
		Path:    "/api/diagnosis-history",
		Query:   pageQuery(page, perPage, defaultDiagnosisPerPage),
		Timeout: g.timeouts.History,
	}
	if err := g.exec.Do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func pageQuery(page, perPage, defaultPerPage int) url.Values {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".webp": true,
}

// IsSupportedImage reports whether the backend accepts fileName's extension
// for image uploads.
func IsSupportedImage(fileName string) bool {
	return imageExtensions[strings.ToLower(path.Ext(fileName))]
}
