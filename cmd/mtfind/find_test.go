package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpronin/mtfind/pkg/store"
)

// resetFindFlags restores the find command's flag state between tests.
func resetFindFlags() {
	findWorkers = 0
	findDelimiter = "\n"
	findStrategy = "auto"
	findPatternsPath = ""
	findPatternsInclude = ""
	findPatternsExclude = ""
	findDBPath = ""
	findFormat = "human"
	findRecursive = false
	findIncludeHidden = false
	findMaxFileSize = 0
	findGzip = false
}

func testCmd(buf *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunFind_ClassicContract(t *testing.T) {
	resetFindFlags()
	path := writeInput(t, "input.txt", "bad\nmad\nhad\n")

	var buf bytes.Buffer
	require.NoError(t, runFind(testCmd(&buf), path, "?ad"))

	assert.Equal(t, "3\n1 1 bad\n2 1 mad\n3 1 had\n", buf.String())
}

func TestRunFind_NoMatches(t *testing.T) {
	resetFindFlags()
	path := writeInput(t, "input.txt", "nothing here\n")

	var buf bytes.Buffer
	require.NoError(t, runFind(testCmd(&buf), path, "zzz"))

	assert.Equal(t, "0\n", buf.String())
}

func TestRunFind_MissingFile(t *testing.T) {
	resetFindFlags()

	var buf bytes.Buffer
	err := runFind(testCmd(&buf), filepath.Join(t.TempDir(), "nope.txt"), "x")
	assert.ErrorContains(t, err, "doesn't exist")
}

func TestRunFind_DirectoryWithoutRecursive(t *testing.T) {
	resetFindFlags()

	var buf bytes.Buffer
	err := runFind(testCmd(&buf), t.TempDir(), "x")
	assert.ErrorContains(t, err, "not regular")
}

func TestRunFind_InvalidMask(t *testing.T) {
	resetFindFlags()
	path := writeInput(t, "input.txt", "data\n")

	var buf bytes.Buffer
	err := runFind(testCmd(&buf), path, string([]byte{0x7F}))
	assert.ErrorContains(t, err, "incorrect format")
}

func TestRunFind_JSONFormat(t *testing.T) {
	resetFindFlags()
	findFormat = "json"
	path := writeInput(t, "input.txt", "one two\ntwo\n")

	var buf bytes.Buffer
	require.NoError(t, runFind(testCmd(&buf), path, "two"))

	var decoded struct {
		Count    int `json:"count"`
		Findings []struct {
			Line   uint64 `json:"line"`
			Offset uint64 `json:"offset"`
			Bytes  string `json:"bytes"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Count)
	require.Len(t, decoded.Findings, 2)
	assert.EqualValues(t, 1, decoded.Findings[0].Line)
	assert.EqualValues(t, 5, decoded.Findings[0].Offset)
	assert.Equal(t, "two", decoded.Findings[0].Bytes)
}

func TestRunFind_SARIFFormat(t *testing.T) {
	resetFindFlags()
	findFormat = "sarif"
	path := writeInput(t, "input.txt", "needle\n")

	var buf bytes.Buffer
	require.NoError(t, runFind(testCmd(&buf), path, "needle"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2.1.0", decoded["version"])
}

func TestRunFind_Recursive(t *testing.T) {
	resetFindFlags()
	findRecursive = true

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hit\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("hit hit\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, runFind(testCmd(&buf), root, "hit"))

	out := buf.String()
	assert.Contains(t, out, "3\n")
	assert.Contains(t, out, "a.txt:1 1 hit")
	assert.Contains(t, out, "b.txt:1 1 hit")
}

func TestRunFind_PatternSet(t *testing.T) {
	resetFindFlags()
	dir := t.TempDir()

	patternsFile := filepath.Join(dir, "patterns.yaml")
	patternsYAML := `patterns:
  - name: any-ad
    mask: '?ad'
  - name: greeting
    mask: hello
`
	require.NoError(t, os.WriteFile(patternsFile, []byte(patternsYAML), 0o644))
	findPatternsPath = patternsFile

	input := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("bad hello\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, runFind(testCmd(&buf), input, ""))

	out := buf.String()
	assert.Contains(t, out, "2\n")
	assert.Contains(t, out, "any-ad:1 1 bad")
	assert.Contains(t, out, "greeting:1 5 hello")
}

func TestRunFind_StoresToDB(t *testing.T) {
	resetFindFlags()
	dir := t.TempDir()
	findDBPath = filepath.Join(dir, "results.db")

	input := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("bad\nmad\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, runFind(testCmd(&buf), input, "?ad"))

	s, err := store.New(store.Config{Path: findDBPath})
	require.NoError(t, err)
	defer s.Close()

	count, err := s.FindingCount()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	stored, err := s.GetFindings(input)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "bad", string(stored[0].Finding.Bytes))
}

func TestRunFind_CustomDelimiter(t *testing.T) {
	resetFindFlags()
	findDelimiter = ";"
	path := writeInput(t, "input.txt", "x;yx;z")

	var buf bytes.Buffer
	require.NoError(t, runFind(testCmd(&buf), path, "x"))

	assert.Equal(t, "2\n1 1 x\n2 2 x\n", buf.String())
}

func TestRunFind_StrategiesAgree(t *testing.T) {
	path := writeInput(t, "input.txt", "alpha\nbeta\nalpha beta\n")

	outputs := map[string]string{}
	for _, strategy := range []string{"dnc", "rr"} {
		resetFindFlags()
		findStrategy = strategy

		var buf bytes.Buffer
		require.NoError(t, runFind(testCmd(&buf), path, "alpha"))
		outputs[strategy] = buf.String()
	}

	assert.Equal(t, outputs["dnc"], outputs["rr"])
	assert.Equal(t, "2\n1 1 alpha\n3 1 alpha\n", outputs["dnc"])
}

func TestParseDelimiter(t *testing.T) {
	for input, want := range map[string]byte{
		"\n":  '\n',
		"\\n": '\n',
		"\\t": '\t',
		"\\0": 0,
		";":   ';',
	} {
		got, err := parseDelimiter(input)
		require.NoError(t, err, "%q", input)
		assert.Equal(t, want, got, "%q", input)
	}

	_, err := parseDelimiter("ab")
	assert.Error(t, err)
}
