package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalid-nowaf/pathtrie/pkg/pathmap"
)

var mappingFiles = map[string]string{
	"mappings.csv": "src,dst\n/etc/bin/echos,usr/cat\n/etc/bin/echo/hello.txt,usr/tar\n",
	"mappings.tsv": "src\tdst\n/etc/bin/echos\tusr/cat\n/etc/bin/echo/hello.txt\tusr/tar\n",
	"mappings.json": `[
  {"src": "/etc/bin/echos", "dst": "usr/cat"},
  {"src": "/etc/bin/echo/hello.txt", "dst": "usr/tar"}
]`,
	"mappings.yaml": `- src: /etc/bin/echos
  dst: usr/cat
- src: /etc/bin/echo/hello.txt
  dst: usr/tar
`,
	"mappings.toml": `[[mapping]]
src = "/etc/bin/echos"
dst = "usr/cat"

[[mapping]]
src = "/etc/bin/echo/hello.txt"
dst = "usr/tar"
`,
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runCLIWith(t, args)
	return stdout, err
}

func runCLIWith(t *testing.T, args []string, options ...kong.Option) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := Run(args, stdout, stderr, options...)
	return stdout.String(), stderr.String(), err
}

// TestParseFormats verifies that every supported format loads the same mappings.
func TestParseFormats(t *testing.T) {
	dir := t.TempDir()
	flags := &MappingFlags{SrcKey: "src", DstKey: "dst", Separator: "/"}

	for name, content := range mappingFiles {
		file := writeFile(t, dir, name, content)

		mappings := []Mapping{}
		err := parseFile(flags, file, func(m *Mapping) error {
			mappings = append(mappings, *m)
			return nil
		})
		assert.NoError(t, err, name)
		assert.Equal(t, []Mapping{
			{Src: "/etc/bin/echos", Dst: "usr/cat"},
			{Src: "/etc/bin/echo/hello.txt", Dst: "usr/tar"},
		}, mappings, name)
	}
}

func TestParseErrors(t *testing.T) {
	dir := t.TempDir()
	flags := &MappingFlags{SrcKey: "src", DstKey: "dst", Separator: "/"}
	noop := func(m *Mapping) error { return nil }

	err := parseFile(flags, writeFile(t, dir, "mappings.xml", "<a/>"), noop)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = parseFile(flags, writeFile(t, dir, "missing.csv", "src,target\n/etc,/mnt\n"), noop)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), `"dst"`)

	err = parseFile(flags, writeFile(t, dir, "missing.json", `[{"dst": "/mnt"}]`), noop)
	assert.ErrorIs(t, err, ErrMissingKey)

	err = parseFile(flags, writeFile(t, dir, "broken.json", `{"src": "/etc"`), noop)
	assert.Error(t, err)
}

func TestLoadMappingsCustomKeys(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "custom.csv", "# comment\nfrom,to\n/a,/b\n/a,/c\n")
	flags := &MappingFlags{SrcKey: "from", DstKey: "to", Separator: "/"}

	pm := pathmap.NewPathMap()
	n, err := loadMappings(pm, flags, file)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "both rows are inserted")
	assert.Equal(t, 1, pm.Len(), "second row replaces the first")

	dst, _ := pm.Lookup("/a")
	assert.Equal(t, "/c", dst)
}

func TestResolveCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "mappings.yaml", mappingFiles["mappings.yaml"])

	out, err := runCLI(t, "resolve", "-m", file, "/etc/bin/echos", "/etc/bin/echo/hello.txt/jello", "/etc/bin/echo")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"/etc/bin/echos -> usr/cat (matched /etc/bin/echos -> usr/cat)",
		"/etc/bin/echo/hello.txt/jello -> usr/tar/jello (matched /etc/bin/echo/hello.txt -> usr/tar)",
		"/etc/bin/echo: no match",
	}, lines)
}

func TestResolveCommandJSON(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "mappings.toml", mappingFiles["mappings.toml"])

	out, err := runCLI(t, "resolve", "--mappings", file, "--output", "json", "/etc/bin/echo/hello.txt/jello")
	require.NoError(t, err)

	results := []pathmap.Resolution{}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.True(t, results[0].Found)
	assert.Equal(t, "usr/tar/jello", results[0].Resolved)
	assert.Equal(t, "/etc/bin/echo/hello.txt", results[0].Matched)
}

func TestLookupCommandCSVToFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "mappings.json", mappingFiles["mappings.json"])
	outFile := filepath.Join(dir, "out.csv")

	out, err := runCLI(t, "lookup", "-m", file, "-o", "csv", "--out-file", outFile, "/etc/bin/echos", "/etc/bin/echo")
	require.NoError(t, err)
	assert.Empty(t, out, "results go to the file")

	written, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "path,matched,destination,resolved,found\n"+
		"/etc/bin/echos,/etc/bin/echos,usr/cat,usr/cat,true\n"+
		"/etc/bin/echo,,,,false\n", string(written))
}

func TestStrict(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "mappings.csv", mappingFiles["mappings.csv"])

	_, err := runCLI(t, "resolve", "-m", file, "--strict", "/etc/bin/echos", "/usr")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = runCLI(t, "lookup", "-m", file, "--strict", "/etc/bin/echo/hello.txt/jello")
	assert.ErrorIs(t, err, ErrNoMatch, "lookup does not fall back to prefixes")
}

func TestMultipleMappingFiles(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.csv", "src,dst\n/etc,/mnt/etc\n")
	override := writeFile(t, dir, "override.yaml", "- src: /etc\n  dst: /srv/etc\n")

	out, err := runCLI(t, "resolve", "-m", base, "-m", override, "-o", "tsv", "/etc/hosts")
	require.NoError(t, err)
	assert.Equal(t, "path\tmatched\tdestination\tresolved\tfound\n/etc/hosts\t/etc\t/srv/etc\t/srv/etc/hosts\ttrue\n", out)
}

func TestMissingMappingFile(t *testing.T) {
	_, err := runCLI(t, "resolve", "-m", filepath.Join(t.TempDir(), "nope.csv"), "/etc")
	assert.Error(t, err)
}

// TestConfigurationDefaults verifies that a JSON config file overrides flag defaults.
func TestConfigurationDefaults(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "mappings.csv", "from,to\n/etc,/mnt\n")
	config := writeFile(t, dir, "pathtrie.json", `{"src_key": "from", "dst_key": "to"}`)

	out, _, err := runCLIWith(t, []string{"resolve", "-m", file, "/etc/x"}, kong.Configuration(kong.JSON, config))
	require.NoError(t, err)
	assert.Equal(t, "/etc/x -> /mnt/x (matched /etc -> /mnt)\n", out)

	// flags still win over the config file
	_, _, err = runCLIWith(t, []string{"resolve", "-m", file, "--src-key", "src", "/etc/x"}, kong.Configuration(kong.JSON, config))
	assert.ErrorIs(t, err, ErrMissingKey)

	// kebab-case keys are not config keys, the built-in defaults apply
	kebab := writeFile(t, dir, "kebab.json", `{"src-key": "from", "dst-key": "to"}`)
	_, _, err = runCLIWith(t, []string{"resolve", "-m", file, "/etc/x"}, kong.Configuration(kong.JSON, kebab))
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), `"src"`)
}

// TestStatsSummary verifies that the counters are reported on stderr without --verbose.
func TestStatsSummary(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "mappings.csv", mappingFiles["mappings.csv"])

	out, stderr, err := runCLIWith(t, []string{"resolve", "-m", file, "/etc/bin/echos", "/etc/bin/echo/hello.txt/x", "/usr"})
	require.NoError(t, err)
	assert.NotContains(t, out, "Mappings:", "summary should not mix with results")
	assert.Contains(t, stderr, "Mappings: 2, Queried: 3, Matched: 2")
	assert.NotContains(t, stderr, "Mapping inserted", "insert logs need --verbose")
}

// TestKeepCloseError verifies that a failing close is reported only when nothing failed before it.
func TestKeepCloseError(t *testing.T) {
	closeErr := errors.New("close failed")
	failingClose := func() error { return closeErr }

	var err error
	keepCloseError(failingClose, &err)
	assert.ErrorIs(t, err, closeErr)

	writeErr := errors.New("write failed")
	err = writeErr
	keepCloseError(failingClose, &err)
	assert.ErrorIs(t, err, writeErr, "first error should be kept")

	err = nil
	keepCloseError(func() error { return nil }, &err)
	assert.NoError(t, err)
}
