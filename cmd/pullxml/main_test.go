package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0"?>
<root>
  <!-- orders -->
  <order id="1"/>
  <note>hi &amp; bye</note>
</root>
`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := runWithArgs(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunWalk(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "", writeDoc(t, sampleDoc))
	require.Equal(t, 0, code, stderr)
	require.Equal(t, strings.Join([]string{
		"Element /root",
		"AltClosing /root order",
		`Data /root/note "hi & bye"`,
		"ClosingTag /root",
		"ClosingTag /",
	}, "\n")+"\n", stdout)
}

func TestRunWalkStdin(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "<a>x</a>", "-")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "Data /a \"x\"\nClosingTag /\n", stdout)
}

func TestRunNames(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "", "-mode", "names", writeDoc(t, sampleDoc))
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "root\norder\nnote\nnote\nroot\n", stdout)
}

func TestRunFlatten(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "", "-mode", "flatten", "-separator", ".", writeDoc(t, sampleDoc))
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "root.order.-id=1\nroot.note=hi & bye\n", stdout)
}

func TestRunFlattenGrouped(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, `<root><order id="1">x</order><note>hi</note></root>`)
	code, stdout, stderr := runCLI(t, "", "-mode", "flatten", "-group", doc)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "root/order\n  -id=1\n  #text=x\nroot\n  note=hi\n", stdout)
}

func TestRunInteractivePasted(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "<a>x</a>\ny\nr\ny\n", "-mode", "interactive")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "Welcome to the interactive XML parser!")
	require.Contains(t, stdout, "Data detected. Press r to read or s to skip. x\n")
	require.True(t, strings.HasSuffix(stdout, "No further input detected. Parsing is complete.\n"))
}

func TestRunInteractiveFile(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "y\ny\n", "-mode", "interactive", writeDoc(t, "<a><b/></a>"))
	require.Equal(t, 0, code, stderr)
	require.NotContains(t, stdout, "Welcome")
	require.Contains(t, stdout, "Current path: /a\nChild element(s) detected. ")
}

func TestRunMalformed(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "", writeDoc(t, "<root><foo"))
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "[xml-malformed]")
	require.Contains(t, stderr, "/root")
}

func TestRunStrictEntities(t *testing.T) {
	t.Parallel()

	doc := writeDoc(t, "<a>&lol;</a>")

	code, _, stderr := runCLI(t, "", doc)
	require.Equal(t, 0, code, stderr)

	code, _, stderr = runCLI(t, "", "-strict-entities", doc)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "[xml-malformed]")
}

func TestRunMaxDepth(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "", "-max-depth", "1", writeDoc(t, "<a><b/><c></c></a>"))
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "[xml-malformed]")
}

func TestRunMaxSize(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "", "-max-size", "4", writeDoc(t, "<root></root>"))
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "[xml-io]")
}

func TestRunMissingFile(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "", filepath.Join(t.TempDir(), "missing.xml"))
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "[xml-io]")
}

func TestRunUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown mode", args: []string{"-mode", "tree"}, want: `unknown mode "tree"`},
		{name: "too many files", args: []string{"a.xml", "b.xml"}, want: "at most one XML file"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, _, stderr := runCLI(t, "", tt.args...)
			require.Equal(t, 2, code)
			require.Contains(t, stderr, tt.want)
			require.Contains(t, stderr, "Usage: pullxml")
		})
	}
}

func TestRunUnknownFlag(t *testing.T) {
	t.Parallel()

	code, _, _ := runCLI(t, "", "-nope")
	require.Equal(t, 2, code)
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "", "-h")
	require.Equal(t, 0, code)
	require.Contains(t, stderr, "-strict-end-tags")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "", "-version")
	require.Equal(t, 0, code)
	require.True(t, strings.HasPrefix(stdout, "pullxml "))
}

func TestRunConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "pullxml.conf")
	require.NoError(t, os.WriteFile(cfg, []byte("mode names\n"), 0o600))

	code, stdout, stderr := runCLI(t, "", "-config", cfg, writeDoc(t, "<a><b/></a>"))
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "a\nb\na\n", stdout)
}

func TestRunEnvVar(t *testing.T) {
	t.Setenv("PULLXML_MODE", "flatten")

	code, stdout, stderr := runCLI(t, "", writeDoc(t, `<a k="v"/>`))
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "a/-k=v\n", stdout)
}

func TestRunLogFile(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "pullxml.log")
	code, _, stderr := runCLI(t, "", "-debug", "-log-file", logPath, writeDoc(t, "<a/>"))
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"loaded document"`)
}
