package base64_test

import (
	"errors"
	"testing"

	"tourbook/shared/base64"
)

const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: "data:image/png;base64," + pixelPNG, expected: "image/png"},
		{name: "webp", input: "data:image/webp;base64,UklGRg==", expected: "image/webp"},
		{name: "parameters kept", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zy8+", expected: "image/svg+xml;charset=utf-8"},
		{name: "empty", input: "", expected: ""},
		{name: "plain url", input: "https://cdn.example.com/tour.jpg", expected: ""},
		{name: "missing data prefix", input: "image/png;base64," + pixelPNG, expected: ""},
		{name: "missing base64 marker", input: "data:image/png," + pixelPNG, expected: ""},
		{name: "empty media type", input: "data:;base64,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base64.GetContentType(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}

			if base64.IsDataURI(tt.input) != (tt.expected != "") {
				t.Errorf("IsDataURI(%q) mismatch", tt.input)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode("data:text/plain;base64,SGVsbG8gV29ybGQ=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if contentType != "text/plain" {
		t.Errorf("content type = %q", contentType)
	}

	if string(data) != "Hello World" {
		t.Errorf("payload = %q", data)
	}

	if _, _, err = base64.Decode("data:image/png;base64,@@@"); !errors.Is(err, base64.ErrInvalidDataURI) {
		t.Errorf("expected ErrInvalidDataURI for bad payload, got %v", err)
	}

	if _, _, err = base64.Decode("https://cdn.example.com/tour.jpg"); !errors.Is(err, base64.ErrInvalidDataURI) {
		t.Errorf("expected ErrInvalidDataURI for url, got %v", err)
	}
}
