//go:build ocr

// Package ocr provides the text/region detection capability used by the
// image fallback of table extraction.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-deu
//
// One Client wraps one loaded Tesseract model and is meant to be
// constructed once at process start and reused for every detection call.
// Tesseract holds internal mutable state, so all calls are serialized
// through a mutex; a Client is safe for concurrent use but detections
// run one at a time.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/bszet/subplan/model"
)

// DefaultLanguages is the language set used when none is configured.
// Substitution plans mix German cell text with latin abbreviations.
const DefaultLanguages = "deu+eng"

// Client wraps Tesseract for region detection.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates a new OCR client for the given "+"-separated language
// list (e.g. "deu+eng"). The client should be closed when no longer
// needed to release the loaded model.
func New(languages string) (*Client, error) {
	if languages == "" {
		languages = DefaultLanguages
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(strings.Split(languages, "+")...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR languages: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Detect performs OCR on the given image and returns the recognized
// word regions with their bounding rectangles. Text is NFC-normalized
// and trimmed; empty words are dropped.
func (c *Client) Detect(img image.Image) ([]model.Detection, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	detections := make([]model.Detection, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(norm.NFC.String(b.Word))
		if text == "" {
			continue
		}
		detections = append(detections, model.Detection{
			Text:       text,
			Box:        b.Box,
			Confidence: b.Confidence,
		})
	}
	return detections, nil
}
