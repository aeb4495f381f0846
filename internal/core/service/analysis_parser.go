package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// ParsedAnalysis is what could be recovered from a free-text model reply.
type ParsedAnalysis struct {
	FoodName string
	Calories int
}

var (
	// labelledNumber matches "<label>: <integer>" with optional decoration
	// around the number, e.g. "Calories: ~450 kcal".
	labelledNumber = regexp.MustCompile(`^[^:]*:\s*[~≈]?\s*(\d[\d,]*)`)
	calorieLabel   = regexp.MustCompile(`(?i)calor|kcal`)
	nameLabel      = regexp.MustCompile(`(?i)^(food(\s+name)?|name|dish)\s*:\s*`)
	listNumber     = regexp.MustCompile(`^\d+[.)]\s*`)
)

// ParseAnalysis extracts the food name and calorie count from the model reply.
// The first non-empty line is the name. Calories come from the first
// calorie-labelled "<label>: <integer>" line, or from any labelled number on
// the second line when no line mentions calories.
// ok is false when the calories could not be found, in which case the result
// carries the fallback values.
func ParseAnalysis(text string) (ParsedAnalysis, bool) {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return ParsedAnalysis{FoodName: domain.UnknownFood}, false
	}

	result := ParsedAnalysis{FoodName: cleanName(lines[0])}
	if result.FoodName == "" {
		result.FoodName = domain.UnknownFood
	}

	for _, line := range lines[1:] {
		if !calorieLabel.MatchString(line) {
			continue
		}
		if n, ok := labelledInt(line); ok {
			result.Calories = n
			return result, true
		}
	}
	if len(lines) > 1 {
		if n, ok := labelledInt(lines[1]); ok {
			result.Calories = n
			return result, true
		}
	}

	return result, false
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// cleanName strips markdown decoration, list numbering and a leading
// "Food:" style label.
func cleanName(line string) string {
	line = strings.TrimLeft(line, "#-*• ")
	line = listNumber.ReplaceAllString(line, "")
	line = strings.Trim(line, "* ")
	line = nameLabel.ReplaceAllString(line, "")
	return strings.TrimSpace(strings.Trim(line, "*"))
}

func labelledInt(line string) (int, bool) {
	line = strings.ReplaceAll(line, "*", "")
	m := labelledNumber.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
