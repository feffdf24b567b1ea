// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReplyFullOrder(t *testing.T) {
	got := FormatReply(
		"  학사 일정은 다음과 같습니다.  ",
		[]string{"http://img1.example/a.png", "http://img2.example/b.png"},
		"정확한 정보는 학과 사무실에 문의하세요.",
		"자세한 내용: http://cse.knu.ac.kr/notice",
	)

	lines := strings.Split(got, "\n")
	assert.Equal(t, "학사 일정은 다음과 같습니다.", lines[0])
	assert.Equal(t, `<img src="http://img1.example/a.png" alt="이미지" />`, lines[1])
	assert.Equal(t, `<img src="http://img2.example/b.png" alt="이미지" />`, lines[2])
	assert.Equal(t, "정확한 정보는 학과 사무실에 문의하세요.", lines[3])
	assert.Contains(t, lines[4], `<a href="http://cse.knu.ac.kr/notice" target="_blank" rel="noopener noreferrer">http://cse.knu.ac.kr/notice</a>`)
}

func TestFormatReplyNoContentSentinelSuppressesImages(t *testing.T) {
	got := FormatReply("A", []string{"No content"}, "D", "see http://x")

	assert.NotContains(t, got, "<img")
	assert.Contains(t, got, "A")
	assert.Contains(t, got, "D")
	assert.Contains(t, got, `<a href="http://x" target="_blank" rel="noopener noreferrer">http://x</a>`)
}

func TestFormatReplyEmptyFieldsVanish(t *testing.T) {
	got := FormatReply("답변만 있습니다.", nil, "", "")
	assert.Equal(t, "답변만 있습니다.", got)

	got = FormatReply("", nil, "", "")
	assert.Empty(t, got)
}

func TestFormatReplyDisclaimerOnly(t *testing.T) {
	got := FormatReply("", []string{}, "면책 조항", "")
	assert.Equal(t, "면책 조항", got)
}

func TestLinkifyURLs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single http url",
			in:   "see http://x",
			want: `see <a href="http://x" target="_blank" rel="noopener noreferrer">http://x</a>`,
		},
		{
			name: "https url mid sentence",
			in:   "참고: https://cse.knu.ac.kr/main 입니다",
			want: `참고: <a href="https://cse.knu.ac.kr/main" target="_blank" rel="noopener noreferrer">https://cse.knu.ac.kr/main</a> 입니다`,
		},
		{
			name: "no url untouched",
			in:   "링크 없음",
			want: "링크 없음",
		},
		{
			name: "two urls",
			in:   "http://a http://b",
			want: `<a href="http://a" target="_blank" rel="noopener noreferrer">http://a</a> <a href="http://b" target="_blank" rel="noopener noreferrer">http://b</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LinkifyURLs(tt.in))
		})
	}
}
