package spawn

import (
	"strings"
	"testing"
)

func TestQuote(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello", "'hello'"},
		{"", "''"},
		{"a b", "'a b'"},
		{"it's", `'it'\''s'`},
		{"''", `''\'''\'''`},
		{"don''t", `'don'\'''\''t'`},
		{"$HOME `ls` \"x\" ; & | > <", `'$HOME ` + "`ls`" + ` "x" ; & | > <'`},
		{"/Users/me/Application Support/tool", "'/Users/me/Application Support/tool'"},
	}

	for _, tc := range cases {
		if got := Quote(tc.in); got != tc.want {
			t.Errorf("Quote(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestComposeCommand(t *testing.T) {
	req := Request{
		Path:       "/usr/local/bin/claude",
		InputFile:  "/tmp/in.jsonl",
		OutputFile: "/tmp/out.jsonl",
	}

	want := "cat '/tmp/in.jsonl' | nohup '/usr/local/bin/claude' >> '/tmp/out.jsonl' 2>&1 & echo $!"
	if got := composeCommand(req); got != want {
		t.Errorf("composeCommand() = %q, want %q", got, want)
	}
}

func TestComposeCommandWithArgsAndEnv(t *testing.T) {
	req := Request{
		Path:       "/opt/bin/claude",
		Args:       []string{"--print", "--output-format", "stream-json"},
		InputFile:  "/tmp/in.jsonl",
		OutputFile: "/tmp/out.jsonl",
		Env: []EnvVar{
			{Name: "ANTHROPIC_API_KEY", Value: "sk-test"},
			{Name: "NO_COLOR", Value: "1"},
		},
	}

	want := "cat '/tmp/in.jsonl' | ANTHROPIC_API_KEY='sk-test' NO_COLOR='1' " +
		"nohup '/opt/bin/claude' '--print' '--output-format' 'stream-json' " +
		">> '/tmp/out.jsonl' 2>&1 & echo $!"
	if got := composeCommand(req); got != want {
		t.Errorf("composeCommand() = %q, want %q", got, want)
	}
}

func TestComposeCommandEmptyListsAddNoTokens(t *testing.T) {
	req := Request{
		Path:       "/bin/tool",
		Args:       []string{},
		InputFile:  "/in",
		OutputFile: "/out",
		Env:        []EnvVar{},
	}

	got := composeCommand(req)
	if strings.Contains(got, "  ") {
		t.Errorf("composed command contains a stray separator: %q", got)
	}
	if strings.Contains(got, "''") {
		t.Errorf("composed command contains an empty token: %q", got)
	}
	// No env segment at all between the pipe and nohup.
	if !strings.Contains(got, "| nohup") {
		t.Errorf("expected env segment omitted entirely, got %q", got)
	}
}

func TestComposeCommandQuotesPathsWithMetacharacters(t *testing.T) {
	req := Request{
		Path:       "/Users/me/Application Support/claude",
		Args:       []string{"it's a test"},
		InputFile:  "/tmp/my files/in",
		OutputFile: "/tmp/my files/out",
	}

	got := composeCommand(req)
	if !strings.Contains(got, "'/Users/me/Application Support/claude'") {
		t.Errorf("executable path not quoted: %q", got)
	}
	if !strings.Contains(got, `'it'\''s a test'`) {
		t.Errorf("argument with quote and space not escaped: %q", got)
	}
}
