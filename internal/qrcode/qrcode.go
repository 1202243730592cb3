package qrcode

import (
	"fmt"
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the side of the generated image in pixels.
const DefaultSize = 256

// JoinURL is the address a phone opens to take a seat in the game.
func JoinURL(host, gameID string) string {
	return fmt.Sprintf("http://%s/lobby.html?game=%s", host, url.QueryEscape(gameID))
}

// Generate creates a QR code PNG image for the given URL.
func Generate(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
