package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"sync"

	robotgo "github.com/go-vgo/robotgo"
	config "github.com/xipchat/cli/config"
	domain "github.com/xipchat/cli/internal/domain"
	logger "github.com/xipchat/cli/internal/logger"
	clipboard "golang.design/x/clipboard"
	xdraw "golang.org/x/image/draw"
)

// ScreenCaptureService captures the screen as a PNG attachment for
// multimodal chat messages
type ScreenCaptureService struct {
	cfg config.CaptureConfig

	clipboardOnce sync.Once
	clipboardErr  error
}

// NewScreenCaptureService creates a capture service from configuration
func NewScreenCaptureService(cfg config.CaptureConfig) *ScreenCaptureService {
	return &ScreenCaptureService{cfg: cfg}
}

// Capture grabs the configured display, scales it down to the configured
// maximum width and returns it base64-encoded
func (s *ScreenCaptureService) Capture(ctx context.Context) (*domain.ImageAttachment, error) {
	if !s.cfg.Enabled {
		return nil, fmt.Errorf("screen capture is disabled")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	robotgo.DisplayID = s.cfg.DisplayID
	img, _ := robotgo.CaptureImg()
	if img == nil {
		return nil, fmt.Errorf("failed to capture display %d", s.cfg.DisplayID)
	}

	img = downscale(img, s.cfg.MaxWidth)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode screenshot: %w", err)
	}

	if s.cfg.CopyToClipboard {
		s.copyImage(buf.Bytes())
	}

	logger.Debug("captured screen",
		"display", s.cfg.DisplayID,
		"bytes", buf.Len())

	return &domain.ImageAttachment{
		MimeType: "image/png",
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

func (s *ScreenCaptureService) copyImage(data []byte) {
	s.clipboardOnce.Do(func() { s.clipboardErr = clipboard.Init() })
	if s.clipboardErr != nil {
		logger.Warn("clipboard unavailable", "error", s.clipboardErr)
		return
	}
	clipboard.Write(clipboard.FmtImage, data)
}

// downscale scales img down to maxWidth preserving aspect ratio.
// Images at or below maxWidth pass through untouched.
func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	if maxWidth <= 0 || width <= maxWidth {
		return img
	}

	height := bounds.Dy() * maxWidth / width
	if height < 1 {
		height = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)

	return scaled
}
