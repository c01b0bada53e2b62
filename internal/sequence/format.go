package sequence

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/slide-renamer/internal/model"
)

// ParseError reports why a reviewer's identifier input was rejected.
//
// The work list is never mutated when Parse fails; the caller keeps the
// previous value displayed and surfaces the reason so the input can be
// corrected.
type ParseError struct {
	// Input is the raw text that failed to parse.
	Input string

	// Reason is a short human-readable description of the failure.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse identifier %q: %s", e.Input, e.Reason)
}

// Formatter converts identifier numbers to their canonical string form and
// parses reviewer input back into numbers.
//
// Formatting is total for non-negative integers: each number is
// zero-padded to PadWidth digits (padding is a minimum, not a maximum;
// wider numbers render at full width) and joined with Separator.
//
// Example:
//
//	f := sequence.Formatter{Separator: "_", PadWidth: 3}
//	f.Format([]int{1, 2})  // "001_002"
//	f.Parse("001_002", 2)  // [1 2]
//	f.Parse("001002", 2)   // [1 2] (concatenated input style)
type Formatter struct {
	// Separator joins the numbers of one identifier, typically "_".
	Separator string

	// PadWidth is the minimum digit width per number and the fixed
	// per-number width assumed for concatenated input.
	PadWidth int
}

// NewFormatter builds a Formatter from a naming configuration.
func NewFormatter(cfg *model.NamingConfig) Formatter {
	return Formatter{Separator: cfg.Separator, PadWidth: cfg.PadWidth}
}

// Format renders numbers as a padded, separated identifier string.
func (f Formatter) Format(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%0*d", f.PadWidth, n)
	}
	return strings.Join(parts, f.Separator)
}

// Parse converts reviewer input into identifier numbers.
//
// Three input styles are accepted, mirroring how reviewers actually type:
//   - separator-joined: "002_001"
//   - whitespace-joined: "002 001"
//   - concatenated fixed-width digits: "002001" (must be exactly
//     arity x PadWidth digits, otherwise the grouping is ambiguous)
//
// Returns a *ParseError when the part count does not match arity, a part
// is not a non-negative integer, or concatenated input has the wrong
// length.
func (f Formatter) Parse(text string, arity int) ([]int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ParseError{Input: text, Reason: "empty input"}
	}

	parts, err := f.split(trimmed, arity)
	if err != nil {
		return nil, err
	}
	if len(parts) != arity {
		return nil, &ParseError{
			Input:  text,
			Reason: fmt.Sprintf("got %d numbers, want %d", len(parts), arity),
		}
	}

	numbers := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || strings.HasPrefix(part, "-") {
			return nil, &ParseError{
				Input:  text,
				Reason: fmt.Sprintf("%q is not a non-negative integer", part),
			}
		}
		if n < 0 {
			return nil, &ParseError{
				Input:  text,
				Reason: fmt.Sprintf("%d is negative", n),
			}
		}
		numbers[i] = n
	}
	return numbers, nil
}

// split breaks the input into per-number parts according to the accepted
// input styles.
func (f Formatter) split(trimmed string, arity int) ([]string, error) {
	if f.Separator != "" && strings.Contains(trimmed, f.Separator) {
		return strings.Split(trimmed, f.Separator), nil
	}
	if strings.ContainsAny(trimmed, " \t") {
		return strings.Fields(trimmed), nil
	}
	if arity == 1 {
		return []string{trimmed}, nil
	}

	// Concatenated style: only an exact arity x PadWidth digit run can be
	// regrouped unambiguously.
	if !isDigits(trimmed) {
		return nil, &ParseError{
			Input:  trimmed,
			Reason: fmt.Sprintf("%q is not a non-negative integer", trimmed),
		}
	}
	if len(trimmed) != arity*f.PadWidth {
		return nil, &ParseError{
			Input:  trimmed,
			Reason: fmt.Sprintf("concatenated input must be %d digits, got %d", arity*f.PadWidth, len(trimmed)),
		}
	}
	parts := make([]string, 0, arity)
	for i := 0; i < len(trimmed); i += f.PadWidth {
		parts = append(parts, trimmed[i:i+f.PadWidth])
	}
	return parts, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// NextStart returns the first number of the entry following one whose last
// number is previousLast. This is the sole definition of the skip
// semantic: skipFactor counts values skipped, not entries skipped.
func NextStart(previousLast, skipFactor int) int {
	return previousLast + skipFactor + 1
}
