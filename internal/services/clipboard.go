package services

import (
	"fmt"
	"sync"

	clipboard "golang.design/x/clipboard"
)

// ClipboardService copies chat text to the system clipboard
type ClipboardService struct {
	once    sync.Once
	initErr error
}

// NewClipboardService creates a clipboard service; initialization is
// deferred until first use since headless environments have none
func NewClipboardService() *ClipboardService {
	return &ClipboardService{}
}

// CopyText places text on the system clipboard
func (s *ClipboardService) CopyText(text string) error {
	s.once.Do(func() { s.initErr = clipboard.Init() })
	if s.initErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", s.initErr)
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
