//go:build !ocr

// Package ocr provides the text/region detection capability used by the
// image fallback of table extraction.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. All functions return ErrOCRNotEnabled. To enable OCR, rebuild
// with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract and its German language data to be installed.
package ocr

import (
	"errors"
	"image"

	"github.com/bszet/subplan/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguages mirrors the OCR-enabled implementation.
const DefaultLanguages = "deu+eng"

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
func New(languages string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client. It is safe to call on a nil
// client.
func (c *Client) Close() error {
	return nil
}

// Detect returns an error indicating OCR support is not enabled.
func (c *Client) Detect(img image.Image) ([]model.Detection, error) {
	return nil, ErrOCRNotEnabled
}
