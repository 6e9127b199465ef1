package ui

import (
	domain "github.com/xipchat/cli/internal/domain"
)

// chatResponseMsg carries a completed gateway reply into the update loop
type chatResponseMsg struct {
	response *domain.ChatResponse
}

// chatErrMsg carries a failed gateway request into the update loop
type chatErrMsg struct {
	err error
}

// captureMsg carries a finished screen capture into the update loop
type captureMsg struct {
	attachment *domain.ImageAttachment
	err        error
}
