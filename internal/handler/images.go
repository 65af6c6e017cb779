package handler

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// readUpload returns the bytes of the multipart file field, passed through
// a base64 encode/decode round-trip before being stored inline.
func readUpload(c *gin.Context, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", field, err)
	}
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("upload %q: open: %w", field, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("upload %q: read: %w", field, err)
	}
	return reencode(raw)
}

func reencode(raw []byte) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(raw)
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return buf, nil
}
