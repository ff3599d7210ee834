package ai

import (
	"context"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/devaforgestudios-afk/takneek/apperrors"
)

const defaultEnhancePrompt = "Give the product a traditional Indian e-commerce styled background: " +
	"elegant, decorative, and vibrant, while keeping the product clear and centered."

// EnhancedImage is the outcome of a background enhancement: either raw PNG
// bytes or a hosted URL, depending on what the API returned.
type EnhancedImage struct {
	Data []byte
	URL  string
}

// EnhanceImage sends the artwork photo to the gpt-image-1 edit endpoint to
// replace its background. The input is converted to PNG first since the edit
// API only accepts PNG uploads.
func (c *Client) EnhanceImage(ctx context.Context, imagePath, prompt string) (*EnhancedImage, error) {
	if c == nil || c.openai == nil {
		return nil, apperrors.Upstream(nil, "image enhancement is not configured")
	}
	if prompt == "" {
		prompt = defaultEnhancePrompt
	}

	pngPath, cleanup, err := ensurePNG(imagePath)
	if err != nil {
		return nil, apperrors.Upstream(err, "failed to prepare image")
	}
	defer cleanup()

	f, err := os.Open(pngPath)
	if err != nil {
		return nil, apperrors.Upstream(err, "failed to open image")
	}
	defer f.Close()

	resp, err := c.openai.CreateEditImage(ctx, openai.ImageEditRequest{
		Image:  f,
		Prompt: prompt,
		Model:  "gpt-image-1",
		N:      1,
	})
	if err != nil {
		return nil, apperrors.Upstream(err, "image enhancement failed")
	}
	if len(resp.Data) == 0 {
		return nil, apperrors.Upstream(nil, "no enhanced image returned")
	}

	if b64 := resp.Data[0].B64JSON; b64 != "" {
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, apperrors.Upstream(err, "failed to decode enhanced image")
		}
		return &EnhancedImage{Data: data}, nil
	}
	if url := resp.Data[0].URL; url != "" {
		return &EnhancedImage{URL: url}, nil
	}
	return nil, apperrors.Upstream(nil, "no enhanced image returned")
}

// ensurePNG returns a PNG path for the image, re-encoding into a temp file
// when the source is another format. The cleanup func removes the temp file.
func ensurePNG(imagePath string) (string, func(), error) {
	if strings.EqualFold(filepath.Ext(imagePath), ".png") {
		return imagePath, func() {}, nil
	}

	src, err := os.Open(imagePath)
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", nil, err
	}

	tmp, err := os.CreateTemp("", "enhance-*.png")
	if err != nil {
		return "", nil, err
	}
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}
