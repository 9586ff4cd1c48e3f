package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/projectmate/backend/pkg/logger"
)

// Parsing helpers for free-text LLM replies. Replies are expected to
// follow the ALL-CAPS-header layout the prompts ask for, but nothing
// about an LLM reply is guaranteed: every helper degrades to a default
// instead of failing, logging a warning when a header is missing.

var (
	// An ALL-CAPS header line like "RISK FACTORS:" marks the start of
	// the next section.
	nextSectionRe = regexp.MustCompile(`\n[A-Z][A-Z -]+:`)

	qaPairRe = regexp.MustCompile(`(?s)Q:\s*(.*?)\nA:\s*(.*?)(?:\nQ:|$)`)

	weekSummaryRe = regexp.MustCompile(`Summary:\s*(.+)`)
	focusTopicRe  = regexp.MustCompile(`Focus Topic:\s*(.+)`)
)

// extractScalar finds the first integer after a header, bounded to
// 0-100. Returns def when the header or number is missing.
func extractScalar(text, header string, def float64) float64 {
	re := regexp.MustCompile(regexp.QuoteMeta(header) + `\s*(\d+)`)
	matches := re.FindStringSubmatch(text)
	if len(matches) < 2 {
		logger.Warnf("[AI] section %q missing from reply, using default %.0f", header, def)
		return def
	}
	score, err := strconv.ParseFloat(matches[1], 64)
	if err != nil || score < 0 || score > 100 {
		return def
	}
	return score
}

// extractEnum finds the first of the allowed tokens after a header.
func extractEnum(text, header string, allowed []string, def string) string {
	re := regexp.MustCompile(regexp.QuoteMeta(header) + `\s*(` + strings.Join(allowed, "|") + `)`)
	matches := re.FindStringSubmatch(text)
	if len(matches) < 2 {
		logger.Warnf("[AI] section %q missing from reply, using default %s", header, def)
		return def
	}
	return matches[1]
}

// extractSection returns the raw content between a header and the next
// ALL-CAPS header (or end of text).
func extractSection(text, header string) (string, bool) {
	idx := strings.Index(text, header)
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(header):]
	if loc := nextSectionRe.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return strings.TrimSpace(rest), true
}

// extractTextSection returns trimmed section text, with a placeholder
// when the section is missing.
func extractTextSection(text, header string) string {
	content, ok := extractSection(text, header)
	if !ok {
		logger.Warnf("[AI] section %q missing from reply", header)
		return "Content not available."
	}
	return content
}

// extractListSection returns up to max items from a section. Bullet
// lines count; so do plain lines that are not headers themselves.
func extractListSection(text, header string, max int) []string {
	content, ok := extractSection(text, header)
	if !ok {
		logger.Warnf("[AI] section %q missing from reply", header)
		return []string{}
	}

	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
			items = append(items, strings.TrimSpace(strings.TrimLeft(line, "-•")))
		} else if len(line) > 3 && line != strings.ToUpper(line) {
			items = append(items, line)
		}
		if len(items) >= max {
			break
		}
	}
	return items
}

// extractWeekBlock returns the text from "Week N" up to "Week N+1" or
// the given terminator header, whichever comes first.
func extractWeekBlock(text string, week int, terminator string) (string, bool) {
	start := strings.Index(text, fmt.Sprintf("Week %d", week))
	if start < 0 {
		return "", false
	}
	block := text[start:]

	end := len(block)
	if next := strings.Index(block[1:], fmt.Sprintf("Week %d", week+1)); next >= 0 {
		end = next + 1
	}
	if term := strings.Index(block, terminator); term >= 0 && term < end {
		end = term
	}
	return block[:end], true
}

// extractWeekScalar pulls a one-line value like "Summary: ..." or
// "Focus Topic: ..." from a week block.
func extractWeekScalar(block string, re *regexp.Regexp, def string) string {
	matches := re.FindStringSubmatch(block)
	if len(matches) < 2 {
		return def
	}
	return strings.TrimSpace(matches[1])
}

// extractWeekList pulls bullet items following a label like "Tasks:"
// inside a week block.
func extractWeekList(block, label string) []string {
	idx := strings.Index(block, label)
	if idx < 0 {
		return []string{}
	}
	rest := block[idx+len(label):]

	items := []string{}
	for _, line := range strings.Split(rest, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
			item := strings.TrimSpace(strings.TrimLeft(trimmed, "-•"))
			// A new label line ("Resources: ...") ends the list.
			if strings.HasSuffix(item, ":") {
				break
			}
			items = append(items, item)
		} else if len(items) > 0 {
			break
		}
	}
	return items
}

// splitNumberedLines returns up to max non-empty lines that carry a
// digit, as found in a numbered work-breakdown listing.
func splitNumberedLines(text string, max int) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.ContainsAny(line, "0123456789") {
			continue
		}
		lines = append(lines, line)
		if len(lines) >= max {
			break
		}
	}
	return lines
}

// InterviewQA is one question/answer pair parsed from a reply.
type InterviewQA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// extractQAPairs parses repeated "Q: ... A: ..." pairs, up to max.
func extractQAPairs(text string, max int) []InterviewQA {
	qas := []InterviewQA{}
	remaining := text
	for len(qas) < max {
		matches := qaPairRe.FindStringSubmatchIndex(remaining)
		if matches == nil {
			break
		}
		question := strings.TrimSpace(remaining[matches[2]:matches[3]])
		answer := strings.TrimSpace(remaining[matches[4]:matches[5]])
		if question != "" && answer != "" {
			qas = append(qas, InterviewQA{Question: question, Answer: answer})
		}
		// Resume at the answer end so the next "Q:" is found again.
		remaining = remaining[matches[5]:]
	}
	return qas
}
