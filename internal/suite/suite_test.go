package suite

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtrip-verifier/internal/diagnostic"
	"roundtrip-verifier/internal/logger"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
}

const testManifest = `
exceptions: exceptions.yaml
cases:
  - name: gap
    original: docs/gap.xml
    projected: out/gap.xml
    ingestion: ingestion/gap.yaml
    mapping_failures: 0
  - name: lossy
    original: docs/lossy.xml
    projected: out/lossy.xml
    mapping_failures: 1
  - name: wrong-count
    original: docs/lossy.xml
    projected: out/lossy.xml
    mapping_failures: 0
  - name: unsupported
    original: docs/gap.xml
    target: RequestClearing
    projection_error: no clearing instructions
    pass: false
  - name: missing-projection
    original: docs/gap.xml
    target: DataDocument
  - name: missing-original
    original: docs/nope.xml
    projected: out/gap.xml
  - name: json
    original: docs/trade.json
    projected: out/trade.json
    mapping_failures: 1
`

func testFiles() map[string]string {
	return map[string]string{
		"manifest.yaml": testManifest,
		"exceptions.yaml": `
excluded:
  prefixes:
    - trade.meta
`,
		"docs/gap.xml": `<trade><id>T1</id><meta><ts>1</ts></meta><note>free text</note></trade>`,
		"out/gap.xml":  `<trade><id> T1 </id></trade>`,
		"ingestion/gap.yaml": `
failures:
  - external_path: trade.note
    value: free text
`,
		"docs/lossy.xml":  `<trade><id>T1</id><rate>0.5</rate></trade>`,
		"out/lossy.xml":   `<trade><id>T1</id><rate>0.6</rate><extra>x</extra></trade>`,
		"docs/trade.json": `{"trade": {"id": "T1", "legs": [{"rate": 1}, {"rate": 2}]}}`,
		"out/trade.json":  `{"trade": {"id": "T1", "legs": [{"rate": 1}, {"rate": 3}]}}`,
	}
}

func TestRunnerEvaluatesCases(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, testFiles())

	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)
	require.Len(t, m.Cases, 7)

	var buf bytes.Buffer

	r := &Runner{Workers: 3, Logger: logger.NewWithWriter(&buf)}

	summary, err := r.Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, summary.Cases, 7)

	statuses := make(map[string]Status, len(summary.Cases))
	for _, c := range summary.Cases {
		statuses[c.Name] = c.Status
	}

	assert.Equal(t, map[string]Status{
		"gap":                StatusPassed,
		"lossy":              StatusPassed,
		"wrong-count":        StatusFailed,
		"unsupported":        StatusSkipped,
		"missing-projection": StatusError,
		"missing-original":   StatusError,
		"json":               StatusPassed,
	}, statuses)

	assert.Equal(t, "gap", summary.Cases[0].Name, "results keep manifest order")
	assert.False(t, summary.OK())
	assert.Equal(t, 3, summary.Count(StatusPassed))
	assert.Equal(t, 2, summary.Count(StatusError))

	gap := summary.Cases[0].Report
	require.NotNil(t, gap)
	assert.True(t, gap.IsFullyReconciled())
	assert.Equal(t, 1, gap.Counts().Matched)
	assert.Equal(t, 1, gap.Counts().Excluded)
	assert.Equal(t, 1, gap.Counts().ExpectedGap)

	codes := make(map[string][]string)
	for _, d := range summary.Diagnostics.All() {
		codes[d.Code] = append(codes[d.Code], d.Case)
	}

	assert.Equal(t, []string{"wrong-count"}, codes[diagnostic.CodeFailureCount])
	assert.Equal(t, []string{"missing-projection"}, codes[diagnostic.CodeProjectionFailed])
	assert.Equal(t, []string{"unsupported"}, codes[diagnostic.CodeProjectionSkipped])
	assert.Equal(t, []string{"missing-original"}, codes[diagnostic.CodeLoad])
	assert.ElementsMatch(t, []string{"lossy", "wrong-count"}, codes[diagnostic.CodeAddedPaths])

	out := buf.String()
	assert.Contains(t, out, "Failed to map: trade.rate ---> 0.5")
	assert.Contains(t, out, "Failed to map: $.trade.legs[1].rate ---> 2")
	assert.Contains(t, out, "expected projection error")
}

func TestRunnerUnexpectedPassStillCountsFailures(t *testing.T) {
	dir := t.TempDir()
	files := testFiles()
	files["manifest.yaml"] = `
cases:
  - name: counted
    original: docs/lossy.xml
    projected: out/lossy.xml
    pass: false
    mapping_failures: 1
  - name: miscounted
    original: docs/lossy.xml
    projected: out/lossy.xml
    pass: false
    mapping_failures: 0
`
	writeFiles(t, dir, files)

	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)

	summary, err := (&Runner{Logger: logger.Discard()}).Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, summary.Cases, 2)

	counted, miscounted := summary.Cases[0], summary.Cases[1]
	assert.Equal(t, StatusPassed, counted.Status)
	require.NotNil(t, counted.Report)
	assert.Equal(t, 1, counted.Report.Counts().Failed)
	assert.Equal(t, StatusFailed, miscounted.Status)

	var unexpected, counts []string
	for _, d := range summary.Diagnostics.All() {
		switch d.Code {
		case diagnostic.CodeUnexpectedPass:
			assert.Equal(t, diagnostic.DiagnosticWarning, d.Severity)
			unexpected = append(unexpected, d.Case)
		case diagnostic.CodeFailureCount:
			counts = append(counts, d.Case)
		}
	}

	assert.ElementsMatch(t, []string{"counted", "miscounted"}, unexpected)
	assert.Equal(t, []string{"miscounted"}, counts)
	assert.False(t, summary.OK())
}

func TestRunnerCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, testFiles())

	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := (&Runner{Logger: logger.Discard()}).Run(ctx, m)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, len(m.Cases), summary.Count(StatusError))
}

func TestRunnerBadExceptionConfig(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"manifest.yaml": "exceptions: exceptions.yaml\ncases: []\n",
		"exceptions.yaml": `
excluded:
  paths:
    - "a..b"
`,
	})

	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	require.NoError(t, err)

	_, err = (&Runner{Logger: logger.Discard()}).Run(context.Background(), m)
	require.Error(t, err)
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		check   func(t *testing.T, m *Manifest)
	}{
		{
			name:  "defaults",
			input: "cases:\n  - original: rates/EUR-OIS-uti.xml\n",
			check: func(t *testing.T, m *Manifest) {
				assert.Equal(t, "1", m.Version)
				require.Len(t, m.Cases, 1)
				assert.Equal(t, "EUR-OIS-uti.xml", m.Cases[0].Name)
				assert.True(t, m.Cases[0].ExpectPass())
				assert.Zero(t, m.Cases[0].MappingFailures)
			},
		},
		{
			name:  "explicit pass false",
			input: "cases:\n  - name: a\n    original: a.xml\n    pass: false\n",
			check: func(t *testing.T, m *Manifest) {
				assert.False(t, m.Cases[0].ExpectPass())
			},
		},
		{
			name:    "missing original",
			input:   "cases:\n  - name: a\n",
			wantErr: "original is required",
		},
		{
			name:    "negative failures",
			input:   "cases:\n  - original: a.xml\n    mapping_failures: -1\n",
			wantErr: "must not be negative",
		},
		{
			name:    "duplicate names",
			input:   "cases:\n  - original: x/a.xml\n  - original: y/a.xml\n",
			wantErr: "duplicate name",
		},
		{
			name:    "invalid yaml",
			input:   "cases: [",
			wantErr: "failed to parse manifest YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.check(t, m)
		})
	}
}

func TestResolve(t *testing.T) {
	m := &Manifest{dir: "/data/suite"}

	assert.Equal(t, filepath.Join("/data/suite", "rates/a.xml"), m.resolve("rates/a.xml"))
	assert.Equal(t, "/abs/a.xml", m.resolve("/abs/a.xml"))
	assert.Empty(t, m.resolve(""))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "passed", StatusPassed.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "unknown", Status(0).String())
}
