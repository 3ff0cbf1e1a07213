package api

import "strings"

// TrimToRect cuts s to at most maxHeight lines of at most maxWidth bytes,
// marking every cut with "[...]".
func TrimToRect(s string, maxHeight int, maxWidth int) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	tall := len(lines) > maxHeight
	if tall {
		lines = lines[:maxHeight]
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if len(line) > maxWidth {
			sb.WriteString(line[:maxWidth])
			sb.WriteString("[...]")
		} else {
			sb.WriteString(line)
		}
	}
	// the height marker is never cut by the width
	if tall {
		if len(lines) > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("[...]")
	}
	return sb.String()
}

// Trimmed returns a copy of r with compiler output cut for streaming.
func (r CompileResult) Trimmed() CompileResult {
	r.Output = TrimToRect(r.Output, MaxOutputHeight, MaxOutputWidth)
	return r
}
