package formatting

import (
	"fmt"
	"strings"

	sdk "github.com/inference-gateway/sdk"
)

// TruncateText truncates text to fit within maxLength, adding "..." if needed
func TruncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	if maxLength <= 3 {
		return "..."
	}

	return text[:maxLength-3] + "..."
}

// ExtractTextFromContent extracts displayable text from potentially
// multimodal message content. Image parts render as placeholders.
func ExtractTextFromContent(content sdk.MessageContent) string {
	simpleStr, err := content.AsMessageContent0()
	if err == nil {
		return simpleStr
	}

	multimodalContent, err := content.AsMessageContent1()
	if err != nil {
		return "[error extracting content]"
	}

	var textParts []string
	imageCount := 0
	for _, part := range multimodalContent {
		// As* conversions unmarshal without checking the discriminator,
		// so the type field decides which branch a part belongs to.
		if textPart, err := part.AsTextContentPart(); err == nil && textPart.Type == sdk.Text {
			textParts = append(textParts, textPart.Text)
			continue
		}

		if _, err := part.AsImageContentPart(); err == nil {
			imageCount++
			textParts = append(textParts, fmt.Sprintf("[Image %d]", imageCount))
		}
	}

	if len(textParts) == 0 {
		return "[empty message]"
	}

	return strings.Join(textParts, " ")
}
