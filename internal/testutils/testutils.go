// Package testutils holds assertions shared by the package tests that
// testify does not cover directly: matching formatted, multi-line
// output (stack traces, cause trees) line by line.
package testutils

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertMatch is a semantic test assertion for string regex matching.
// If the pattern is empty we match only with an empty string for
// simplicity.
func AssertMatch(t *testing.T, pattern, value string, msgAndArgs ...interface{}) bool {
	t.Helper()

	if pattern == "" {
		return assert.Equal(t, pattern, value, msgAndArgs...)
	}
	return assert.Regexp(t, pattern, value, msgAndArgs...)
}

// AssertLinesMatch formats arg with format, breaks the result into
// lines and matches each with a regex per. A single string is split on
// newlines first.
func AssertLinesMatch(t *testing.T, arg interface{}, format string, expected interface{}) {
	t.Helper()

	got := fmt.Sprintf(format, arg)
	gotLines := strings.Split(got, "\n")

	var wantLines []string
	switch want := expected.(type) {
	case string:
		wantLines = strings.Split(want, "\n")
	case []string:
		wantLines = want
	default:
		t.Fatalf("bad expected value passed: only handles string and []string: %#v", expected)
	}

	if !assert.Lenf(t, gotLines, len(wantLines), "line count differs:\n got: %q\nwant: %q", got, expected) {
		return
	}

	for i, w := range wantLines {
		AssertMatch(t, w, gotLines[i], fmt.Sprintf("line %0d", i+1))
	}
}

// AssertContainsLines checks that every expected regex matches some
// line of the formatted output, in order, allowing unmatched lines in
// between. Use it where the exact stack depth is not stable.
func AssertContainsLines(t *testing.T, arg interface{}, format string, expected []string) {
	t.Helper()

	got := fmt.Sprintf(format, arg)
	lines := strings.Split(got, "\n")

	next := 0
	for _, w := range expected {
		found := false
		for next < len(lines) {
			line := lines[next]
			next++
			if matchLine(w, line) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no line matching re%q (in order) in:\n%s", w, got)
			return
		}
	}
}

func matchLine(pattern, line string) bool {
	if pattern == "" {
		return line == ""
	}
	return regexp.MustCompile(pattern).MatchString(line)
}
