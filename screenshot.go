package webdriver

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
)

// ScreenshotBase64 captures the current viewport and returns it as the
// base64 PNG text the remote end produced, undecoded.
func (s *Session) ScreenshotBase64(ctx context.Context) (string, error) {
	return do[string](ctx, s, takeScreenshotCmd)
}

// Screenshot captures the current viewport and returns the decoded PNG
// bytes.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	b64, err := s.ScreenshotBase64(ctx)
	if err != nil {
		return nil, err
	}
	return decodeScreenshot(b64)
}

// ScreenshotToFile captures the current viewport and writes the decoded
// PNG bytes to the named file. The file handle is released on every exit
// path, including when the write fails partway.
func (s *Session) ScreenshotToFile(ctx context.Context, name string) error {
	buf, err := s.Screenshot(ctx)
	if err != nil {
		return err
	}
	return writeFile(name, buf)
}

// decodeScreenshot decodes the base64 payload of a screenshot or print
// response into the raw byte buffer it encodes.
func decodeScreenshot(b64 string) ([]byte, error) {
	buf, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}
	return buf, nil
}

// writeFile writes buf to the named file, creating or truncating it.
func writeFile(name string, buf []byte) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PrintOptions configures the print command. The zero value requests the
// remote end's defaults.
type PrintOptions struct {
	// Orientation is "portrait" or "landscape".
	Orientation string `json:"orientation,omitempty"`
	// Scale is the page scale factor, 0.1 through 2.
	Scale float64 `json:"scale,omitempty"`
	// Background prints background images and colors.
	Background bool `json:"background,omitempty"`
	// PageRanges limits output to the given ranges, e.g. "1-3" or "5".
	PageRanges []string `json:"pageRanges,omitempty"`
	// ShrinkToFit scales content to fit the page width.
	ShrinkToFit bool `json:"shrinkToFit,omitempty"`
}

// PrintPDF renders the current page to a paginated PDF and returns the
// decoded document bytes. A nil opts prints with the remote end's
// defaults.
func (s *Session) PrintPDF(ctx context.Context, opts *PrintOptions) ([]byte, error) {
	b64, err := do[string](ctx, s, func(sid string) Command { return printCmd(sid, opts) })
	if err != nil {
		return nil, err
	}
	return decodeScreenshot(b64)
}

// PrintToFile renders the current page to a PDF file at the named path.
func (s *Session) PrintToFile(ctx context.Context, name string, opts *PrintOptions) error {
	buf, err := s.PrintPDF(ctx, opts)
	if err != nil {
		return err
	}
	return writeFile(name, buf)
}
