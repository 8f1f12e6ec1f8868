package qr

import (
	"fmt"
	"net/url"
)

// Generator builds pickup-verification QR image URLs against a
// third-party image-generation endpoint. The payload is the bare request
// id, unsigned.
type Generator struct {
	endpoint string
}

func NewGenerator(endpoint string) *Generator {
	return &Generator{
		endpoint: endpoint,
	}
}

// ImageURL returns the image URL encoding the request id as payload.
func (g *Generator) ImageURL(requestID string) string {
	query := url.Values{}
	query.Set("data", requestID)
	query.Set("size", "240x240")
	return fmt.Sprintf("%s?%s", g.endpoint, query.Encode())
}
