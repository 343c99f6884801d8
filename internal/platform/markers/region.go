// Package markers manages marker-delimited regions inside line-oriented
// text files. Lines keep their terminators so untouched content round-trips
// byte for byte.
package markers

import "strings"

// Region is a named pair of marker lines. A line belongs to a marker when it
// contains the marker text.
type Region struct {
	Start string
	End   string
}

// SplitLines splits content after every "\n", keeping the terminators.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Strip removes every occurrence of the region, markers included. An
// unterminated region runs to the end of input.
func (r Region) Strip(lines []string) []string {
	out := make([]string, 0, len(lines))
	inside := false
	for _, line := range lines {
		switch {
		case !inside && strings.Contains(line, r.Start):
			inside = true
		case inside && strings.Contains(line, r.End):
			inside = false
		case !inside:
			out = append(out, line)
		}
	}
	return out
}

// Body returns the lines between the first start marker and its end marker,
// markers excluded.
func (r Region) Body(lines []string) []string {
	var out []string
	inside := false
	for _, line := range lines {
		if !inside {
			if strings.Contains(line, r.Start) {
				inside = true
			}
			continue
		}
		if strings.Contains(line, r.End) {
			break
		}
		out = append(out, line)
	}
	return out
}

// Extract returns the first occurrence of the region with its marker lines,
// as written. A missing end marker is supplied so the result is always a
// closed region.
func (r Region) Extract(lines []string) []string {
	var out []string
	inside := false
	for _, line := range lines {
		if !inside {
			if strings.Contains(line, r.Start) {
				inside = true
				out = append(out, Terminate(line))
			}
			continue
		}
		out = append(out, Terminate(line))
		if strings.Contains(line, r.End) {
			return out
		}
	}
	if inside {
		out = append(out, r.End+"\n")
	}
	return out
}

// Wrap encloses body in freshly written marker lines. An empty body yields
// no lines at all.
func (r Region) Wrap(body []string) []string {
	if len(body) == 0 {
		return nil
	}
	out := make([]string, 0, len(body)+2)
	out = append(out, r.Start+"\n")
	for _, line := range body {
		out = append(out, Terminate(line))
	}
	return append(out, r.End+"\n")
}

// Terminate appends "\n" when line lacks one.
func Terminate(line string) string {
	if strings.HasSuffix(line, "\n") {
		return line
	}
	return line + "\n"
}
