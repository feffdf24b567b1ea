// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"regexp"
	"strings"
)

// =============================================================================
// REPLY FORMATTING
// =============================================================================

// The backend answers with four loosely filled fields: answer text, image
// URLs, a disclaimer, and a references blob. The client folds them into ONE
// bot turn, in a fixed order, keeping the markup the web client produced so
// saved conversations render identically everywhere.

// NoContentSentinel is the backend's way of saying "no images": a list whose
// first element is this literal string suppresses image markup entirely.
const NoContentSentinel = "No content"

// ServerProblemNotice is the fixed bot turn appended when a chat request
// fails for any reason.
const ServerProblemNotice = "서버에 문제가 있습니다. 잠시 후 다시 시도해주세요!"

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// FormatReply builds the single bot-turn body from a backend reply.
//
// Order is fixed: trimmed answer, image markup, disclaimer, references with
// bare URLs rewritten into anchors. Empty fields vanish rather than leaving
// blank lines.
func FormatReply(answer string, images []string, disclaimer, references string) string {
	var parts []string

	if a := strings.TrimSpace(answer); a != "" {
		parts = append(parts, a)
	}

	if len(images) > 0 && images[0] != NoContentSentinel {
		imgs := make([]string, 0, len(images))
		for _, url := range images {
			imgs = append(imgs, `<img src="`+url+`" alt="이미지" />`)
		}
		parts = append(parts, strings.Join(imgs, "\n"))
	}

	if d := strings.TrimSpace(disclaimer); d != "" {
		parts = append(parts, d)
	}

	if r := strings.TrimSpace(references); r != "" {
		parts = append(parts, LinkifyURLs(r))
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// LinkifyURLs rewrites every bare http(s) URL in text into an anchor tag.
func LinkifyURLs(text string) string {
	return urlPattern.ReplaceAllStringFunc(text, func(url string) string {
		return `<a href="` + url + `" target="_blank" rel="noopener noreferrer">` + url + `</a>`
	})
}
