package gsuite

import (
	"strconv"
	"strings"
	"time"
)

// Section markers used by the org documents. Each block between two markers
// describes one record, with fields at fixed line positions.
const (
	OperationMarker  = "===OPERATION==="
	EventMarker      = "===EVENT==="
	CareerPathMarker = "===CAREERPATH==="
	RankMarker       = "---RANK---"
)

// Minimum non-empty line counts per block. Blocks shorter than this are
// reported as skipped rather than silently dropped.
const (
	minOperationLines  = 6
	minEventLines      = 4
	minCareerPathLines = 2
	minRankLines       = 2
)

// SkippedBlock reports a block that could not be interpreted.
type SkippedBlock struct {
	Index  int
	Reason string
}

// ParsedOperation is an operation record sourced from the operations doc.
// Line layout: title, category, classification, status, version, description,
// then free-form body content.
type ParsedOperation struct {
	Title          string
	Category       string
	Classification string
	Status         string
	Version        string
	Description    string
	Content        string
}

// ParsedEvent is an event record sourced from the events doc. Line layout:
// title, type, location, start, end (optional, "-" for none), description.
type ParsedEvent struct {
	Title       string
	Type        string
	Location    string
	StartTime   time.Time
	EndTime     *time.Time
	Description string
}

// ParsedRank is a rank sub-record within a career path block. Line layout:
// title, level, paygrade, description.
type ParsedRank struct {
	Title       string
	Level       int
	Paygrade    string
	Description string
}

// ParsedCareerPath is a career path record sourced from the career paths doc.
// Head line layout: department, description; followed by rank sub-blocks.
type ParsedCareerPath struct {
	Department  string
	Description string
	Ranks       []ParsedRank
}

// ParseOperations splits the text on the operation marker and interprets each
// block. Short blocks are returned as SkippedBlock entries.
func ParseOperations(text string) ([]ParsedOperation, []SkippedBlock) {
	var ops []ParsedOperation
	var skipped []SkippedBlock

	for idx, block := range splitBlocks(text, OperationMarker) {
		lines := blockLines(block)
		if len(lines) < minOperationLines {
			skipped = append(skipped, SkippedBlock{Index: idx, Reason: "operation block has too few lines"})
			continue
		}
		ops = append(ops, ParsedOperation{
			Title:          lines[0],
			Category:       lines[1],
			Classification: lines[2],
			Status:         lines[3],
			Version:        lines[4],
			Description:    lines[5],
			Content:        strings.Join(lines[6:], "\n"),
		})
	}
	return ops, skipped
}

// ParseEvents splits the text on the event marker and interprets each block.
// Invalid date strings propagate as zero/absent values rather than rejecting
// the block.
func ParseEvents(text string) ([]ParsedEvent, []SkippedBlock) {
	var events []ParsedEvent
	var skipped []SkippedBlock

	for idx, block := range splitBlocks(text, EventMarker) {
		lines := blockLines(block)
		if len(lines) < minEventLines {
			skipped = append(skipped, SkippedBlock{Index: idx, Reason: "event block has too few lines"})
			continue
		}
		event := ParsedEvent{
			Title:     lines[0],
			Type:      lines[1],
			Location:  lines[2],
			StartTime: parseDocTime(lines[3]),
		}
		if len(lines) > 4 {
			if end := parseDocTime(lines[4]); !end.IsZero() {
				event.EndTime = &end
			}
		}
		if len(lines) > 5 {
			event.Description = strings.Join(lines[5:], "\n")
		}
		events = append(events, event)
	}
	return events, skipped
}

// ParseCareerPaths splits the text on the career path marker; within each
// block, rank sub-blocks are delimited by the rank marker.
func ParseCareerPaths(text string) ([]ParsedCareerPath, []SkippedBlock) {
	var paths []ParsedCareerPath
	var skipped []SkippedBlock

	for idx, block := range splitBlocks(text, CareerPathMarker) {
		sections := strings.Split(block, RankMarker)
		head := blockLines(sections[0])
		if len(head) < minCareerPathLines {
			skipped = append(skipped, SkippedBlock{Index: idx, Reason: "career path block has too few lines"})
			continue
		}
		path := ParsedCareerPath{
			Department:  head[0],
			Description: strings.Join(head[1:], "\n"),
		}
		for rankIdx, section := range sections[1:] {
			lines := blockLines(section)
			if len(lines) < minRankLines {
				skipped = append(skipped, SkippedBlock{Index: idx, Reason: "rank block " + strconv.Itoa(rankIdx) + " has too few lines"})
				continue
			}
			rank := ParsedRank{
				Title: lines[0],
				Level: parseDocInt(lines[1]),
			}
			if len(lines) > 2 {
				rank.Paygrade = lines[2]
			}
			if len(lines) > 3 {
				rank.Description = strings.Join(lines[3:], "\n")
			}
			path.Ranks = append(path.Ranks, rank)
		}
		paths = append(paths, path)
	}
	return paths, skipped
}

func splitBlocks(text, marker string) []string {
	var blocks []string
	for _, chunk := range strings.Split(text, marker) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		blocks = append(blocks, chunk)
	}
	return blocks
}

func blockLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

var docTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"January 2, 2006 15:04",
	"January 2, 2006",
}

// parseDocTime converts a date string; failures yield the zero time rather
// than an error.
func parseDocTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return time.Time{}
	}
	for _, layout := range docTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseDocInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
