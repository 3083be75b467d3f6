// Package schedule extracts per-group outage information from the feed's raw
// HTML payload and formats the notification message sent to subscribers.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrGroupNotFound indicates the requested outage group does not appear in
// the current schedule text. Callers treat this as "no data available this
// cycle" rather than a hard failure.
var ErrGroupNotFound = errors.New("group not found in schedule")

const (
	scheduleHeaderMarker = "Графік погодинних відключень на"
	asOfMarker           = "Інформація станом на"
	groupLinePrefix      = "Група "
)

var scheduleDateRe = regexp.MustCompile(`на\s+(\d{2}\.\d{2}\.\d{4})`)

// HTMLToText converts the feed's raw HTML payload into plain text, one
// schedule line per text line. Paragraph and line-break boundaries become
// newlines; all other markup is stripped and blank lines are dropped.
func HTMLToText(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse schedule HTML: %w", err)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li").AfterHtml("\n")

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// Info holds the pieces of the schedule relevant to one group: the date the
// schedule applies to, the "as of" publication time, and the group's own
// outage line.
type Info struct {
	Date      string
	AsOf      string
	GroupLine string
}

// Parse scans the plain schedule text for the header lines and the line of
// the given group. Returns ErrGroupNotFound when the group has no line in
// the current text.
func Parse(fullText, group string) (Info, error) {
	info := Info{Date: "?", AsOf: "?"}

	for _, line := range strings.Split(fullText, "\n") {
		switch {
		case strings.Contains(line, scheduleHeaderMarker):
			if m := scheduleDateRe.FindStringSubmatch(line); m != nil {
				info.Date = m[1]
			} else {
				info.Date = strings.TrimSpace(line)
			}
		case strings.Contains(line, asOfMarker):
			info.AsOf = strings.TrimSpace(strings.Replace(line, asOfMarker, "", 1))
		case matchesGroup(line, group):
			info.GroupLine = strings.TrimSpace(line)
		}
	}

	if info.GroupLine == "" {
		return Info{}, fmt.Errorf("%w: %q", ErrGroupNotFound, group)
	}

	return info, nil
}

// matchesGroup reports whether line is the schedule line for the given
// group. The token after "Група <group>" must not be another digit, so group
// "3.1" does not match the "Група 3.10" line.
func matchesGroup(line, group string) bool {
	token := groupLinePrefix + group
	idx := strings.Index(line, token)
	if idx < 0 {
		return false
	}
	rest := line[idx+len(token):]
	return rest == "" || (rest[0] < '0' || rest[0] > '9')
}

// BuildMessage produces the notification text for one group from the plain
// schedule text. The message carries the schedule date, the publication
// time, and the group's outage line.
func BuildMessage(fullText, group string) (string, error) {
	info, err := Parse(fullText, group)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("⚡ %s %s\n%s %s\n\n%s",
		scheduleHeaderMarker, info.Date,
		asOfMarker, info.AsOf,
		info.GroupLine,
	), nil
}
