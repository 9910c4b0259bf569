package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize suits on-screen scanning with a phone.
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 2048
)

var (
	ErrEmptyContent = errors.New("qrcode: content is empty")
	ErrInvalidSize  = errors.New("qrcode: invalid size")
)

// Generate returns a PNG image encoding content.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size == 0 {
		size = DefaultSize
	}
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, size, MinSize, MaxSize)
	}

	png, err := goqrcode.Encode(content, goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}
	return png, nil
}

// GenerateBase64Image returns the PNG as a data URI for direct HTML embedding.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
