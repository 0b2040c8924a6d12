package pipeline

import "github.com/tidewell/posh/internal/token"

// ParseStage consumes a stage's tokens left to right, recognizing the
// redirection operators >, 1>, >>, 1>>, 2>, 2>> — but only when the token
// carrying the operator was not produced from a quoted span, so that
// `echo ">"` still treats ">" as data. The token immediately following a
// recognized operator is taken as its target path. Repeated redirections
// to the same stream overwrite earlier ones (last wins). What remains
// after stripping operator+target pairs becomes Stage.Argv; an empty
// result is ErrMissingCommand.
func ParseStage(tokens []token.Token) (Stage, error) {
	var stage Stage
	argv := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		tk := tokens[i]
		mode, stream, isOp := classifyOperator(tk)
		if !isOp {
			argv = append(argv, tk.Value)
			continue
		}
		if i+1 >= len(tokens) {
			return Stage{}, ErrMissingCommand
		}
		if _, _, targetIsOp := classifyOperator(tokens[i+1]); targetIsOp {
			return Stage{}, ErrMissingCommand
		}
		target := tokens[i+1].Value
		i++
		r := &Redirect{Path: target, Mode: mode}
		switch stream {
		case streamStdout:
			stage.StdoutRedir = r
		case streamStderr:
			stage.StderrRedir = r
		}
	}

	if len(argv) == 0 {
		return Stage{}, ErrMissingCommand
	}
	stage.Argv = argv
	return stage, nil
}

type stream int

const (
	streamStdout stream = iota
	streamStderr
)

// classifyOperator reports whether tk is a recognized, unquoted redirection
// operator, and if so which stream and mode it selects.
func classifyOperator(tk token.Token) (mode RedirectMode, s stream, ok bool) {
	if tk.Quoted {
		return 0, 0, false
	}
	switch tk.Value {
	case ">", "1>":
		return RedirectTruncate, streamStdout, true
	case ">>", "1>>":
		return RedirectAppend, streamStdout, true
	case "2>":
		return RedirectTruncate, streamStderr, true
	case "2>>":
		return RedirectAppend, streamStderr, true
	default:
		return 0, 0, false
	}
}
