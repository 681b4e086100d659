package spawn

import "strings"

// Quote returns s as a single literal shell token. Everything is wrapped in
// single quotes, which suppress all expansion; an embedded single quote is
// emitted as '\'' (close quoting, literal quote, reopen quoting). The empty
// string becomes '' so it survives as a token.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// shellLine builds a command line from two kinds of tokens: raw shell syntax
// and user data. User data only ever reaches the line through Quote, so no
// code path can concatenate an unescaped path or argument by accident.
type shellLine struct {
	tokens []string
}

// raw appends literal shell syntax (keywords, operators).
func (l *shellLine) raw(tok string) {
	l.tokens = append(l.tokens, tok)
}

// data appends caller-supplied content, quoted.
func (l *shellLine) data(tok string) {
	l.tokens = append(l.tokens, Quote(tok))
}

// assign appends a NAME=value prefix token with the value quoted.
func (l *shellLine) assign(name, value string) {
	l.tokens = append(l.tokens, name+"="+Quote(value))
}

func (l *shellLine) String() string {
	return strings.Join(l.tokens, " ")
}

// composeCommand serializes a Request into the POSIX launch pipeline:
//
//	cat <in> | [NAME=value ...] nohup <exe> <args...> >> <out> 2>&1 & echo $!
//
// The input is piped rather than redirected because print-mode assistant
// CLIs accept streamed stdin but not file-redirected stdin. Environment
// overrides sit after the pipe so they apply to the target executable, not
// to cat. Both output streams share one descriptor so the transcript keeps
// the child's write order. The trailing echo hands the backgrounded child's
// PID back to the parent before the shell exits.
func composeCommand(req Request) string {
	var line shellLine
	line.raw("cat")
	line.data(req.InputFile)
	line.raw("|")
	for _, ev := range req.Env {
		line.assign(ev.Name, ev.Value)
	}
	line.raw("nohup")
	line.data(req.Path)
	for _, arg := range req.Args {
		line.data(arg)
	}
	line.raw(">>")
	line.data(req.OutputFile)
	line.raw("2>&1")
	line.raw("&")
	line.raw("echo")
	line.raw("$!")
	return line.String()
}
