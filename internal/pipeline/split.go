package pipeline

import "strings"

// Split breaks a raw input line into pipeline stage substrings at every
// unquoted, unescaped '|'. Surrounding whitespace on each stage is
// trimmed. A leading, trailing, or doubled pipe yields ErrEmptyPipelineStage.
//
// This has to run on the raw line rather than on already-tokenized words,
// because a stage is itself re-tokenized independently later (see
// ParseStage) and a quoted '|' must never be treated as a separator.
func Split(line string) ([]string, error) {
	var stages []string
	var cur strings.Builder
	inSingle, inDouble := false, false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			cur.WriteRune(c)
		case c == '"' && !inSingle:
			inDouble = !inDouble
			cur.WriteRune(c)
		case c == '\\' && !inSingle:
			cur.WriteRune(c)
			if i+1 < len(runes) {
				cur.WriteRune(runes[i+1])
				i++
			}
		case c == '|' && !inSingle && !inDouble:
			stages = append(stages, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	stages = append(stages, strings.TrimSpace(cur.String()))

	for _, s := range stages {
		if s == "" {
			return nil, ErrEmptyPipelineStage
		}
	}
	return stages, nil
}
