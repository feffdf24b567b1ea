// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/datastreams-knu/knubot-tui/internal/ui/styles"
)

// =============================================================================
// INTRO SCREEN CONTENT
// =============================================================================

// StarterQuestions are the canned questions offered on the empty landing
// screen. Selecting one submits it as-is.
var StarterQuestions = []string{
	"해외 인턴십 정보 알려줘",
	"지도교수 상담 일정 알려줘",
	"참여가능한 대회 알려줘",
	"심컴 졸업요건 알려줘",
	"동계 계절학기 수강신청 언제야",
}

// tutorialPanels are the rotating hero banners on the landing screen. One is
// picked at random per visit.
var tutorialPanels = []string{
	"궁금한 학사정보를 물어보세요!",
	"공지사항을 대신 읽어드립니다",
	"세미나와 취업 정보도 알고 있어요",
	"교수진과 직원 정보를 찾아드려요",
	"회원가입하면 대화가 저장됩니다",
}

// TooltipHint is the one-line nudge under the composer, snoozed for a day
// once dismissed.
const TooltipHint = "Tab 키로 추천 질문을 고를 수 있어요 (Esc로 숨기기)"

// RandomTutorialPanel picks one of the rotating banners.
func RandomTutorialPanel() string {
	return tutorialPanels[rand.Intn(len(tutorialPanels))]
}

// =============================================================================
// USAGE GUIDE
// =============================================================================

// usageGuide is the "챗봇 더 알아보기" modal content.
var usageGuide = []struct {
	heading string
	body    string
}{
	{
		body: "이 서비스는 경북대학교 컴퓨터학부 내 학사정보를 챗봇 형식으로 간편하게 제공하기 위해 개발되었습니다.",
	},
	{
		heading: "Q. 챗봇의 데이터는 얼마나 저장되어 있나요?",
		body:    "2024년 1월 1일 이후로 공지사항에 올라온 정보가 들어있습니다.",
	},
	{
		heading: "Q. 어떤 정보들이 들어있나요?",
		body:    "컴퓨터학부의 공지사항, 세미나 및 취업 정보, 교수진 및 직원의 정보가 들어있습니다.",
	},
}

// RenderUsageGuide renders the usage guide modal body.
func RenderUsageGuide(theme *styles.Theme, width, height int) string {
	var b strings.Builder
	b.WriteString(theme.IntroTitle.Render("사용 설명서"))
	b.WriteString("\n\n")
	for i, section := range usageGuide {
		if section.heading != "" {
			b.WriteString(theme.FormLabel.Render(section.heading))
			b.WriteString("\n")
		}
		b.WriteString(theme.IntroSubtitle.Render(section.body))
		if i < len(usageGuide)-1 {
			b.WriteString("\n\n")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(theme.FormHint.Render("아무 키나 누르면 닫힙니다"))

	box := theme.IntroBox.Render(b.String())
	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// =============================================================================
// STARTER QUESTION LIST
// =============================================================================

// RenderStarters renders the starter question list with the cursor row
// highlighted. A cursor outside the list leaves every row unselected.
func RenderStarters(theme *styles.Theme, cursor int) string {
	rows := make([]string, 0, len(StarterQuestions))
	for i, q := range StarterQuestions {
		if i == cursor {
			rows = append(rows, theme.StarterActive.Render("> "+q))
		} else {
			rows = append(rows, theme.StarterItem.Render("  "+q))
		}
	}
	return strings.Join(rows, "\n")
}
