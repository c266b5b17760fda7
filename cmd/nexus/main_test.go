package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// runCLI executes the root command in-process with output captured.
// Logging is forced quiet so assertions see command output only.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

var shortIDPattern = regexp.MustCompile(`(?:assessment|scenario|Imported) ([0-9a-f]{8})`)

func shortIDFrom(t *testing.T, out string) string {
	t.Helper()
	m := shortIDPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no short id in output:\n%s", out)
	}
	return m[1]
}

const chainYAML = `name: Quiet Harbor CLI
urgency: 0.6
threat_vectors:
  - actor: APT Kestrel
    capability: moderate
    intent: suspected
    domain: cyber
hypotheses:
  - statement: Staged intrusion ahead of data theft
    confidence: 0.6
    primary: true
  - statement: Opportunistic scanning
    confidence: 0
signals:
  - description: Beaconing from the harbor VPN concentrator
    reliability: corroborated
    polarity: supports
    hypothesis: 0
  - description: No exfiltration on monitored egress routes
    reliability: single-source
    polarity: contradicts
    hypothesis: 0
`

func writeChainFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "chain.yaml")
	if err := os.WriteFile(path, []byte(chainYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitInspectFlow(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "nexus.db")

	out, err := runCLI(t, "init", "-f", writeChainFile(t, dir), "--db", db)
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Created assessment") || !strings.Contains(out, "Quiet Harbor CLI") {
		t.Fatalf("unexpected init output:\n%s", out)
	}
	short := shortIDFrom(t, out)

	out, err = runCLI(t, "inspect", short, "--db", db)
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, out)
	}
	for _, want := range []string{"Quiet Harbor CLI", "APT Kestrel", "H1", "H2", "S1", "S2", "Corroborated", "Contradicts"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "list", "--db", db)
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	if !strings.Contains(out, short) || !strings.Contains(out, "1 assessment(s)") {
		t.Fatalf("list output missing chain:\n%s", out)
	}
}

func TestSimulateScoreAudit(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nexus.db")

	out, err := runCLI(t, "simulate", "--db", db, "--name", "Exercise Blue Sky CLI")
	if err != nil {
		t.Fatalf("simulate: %v\n%s", err, out)
	}
	short := shortIDFrom(t, out)

	out, err = runCLI(t, "score", short, "--db", db)
	if err != nil {
		t.Fatalf("score: %v\n%s", err, out)
	}
	// urgency 0.75, primary confidence 0.55: 0.75 x 0.45 = 0.34
	for _, want := range []string{"0.34", "Moderate", "pressure = 0.75 x (1 - 0.55) = 0.34"} {
		if !strings.Contains(out, want) {
			t.Errorf("score output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "audit", short, "--db", db)
	if err != nil {
		t.Fatalf("audit: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No structural biases detected.") {
		t.Fatalf("expected clean audit:\n%s", out)
	}
}

func TestReviseCommandsGrowVersions(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "nexus.db")

	out, err := runCLI(t, "init", "-f", writeChainFile(t, dir), "--db", db)
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	short := shortIDFrom(t, out)

	out, err = runCLI(t, "add-signal", short, "--db", db,
		"-d", "Second sensor confirms the beaconing",
		"--reliability", "corroborated", "--polarity", "supports", "--hypothesis", "H1")
	if err != nil {
		t.Fatalf("add-signal: %v\n%s", err, out)
	}
	if !strings.Contains(out, "v2") {
		t.Fatalf("expected v2 after add-signal:\n%s", out)
	}

	out, err = runCLI(t, "add-vector", short, "--db", db,
		"--actor", "Shell media outlet", "--capability", "limited",
		"--intent", "suspected", "--domain", "information")
	if err != nil {
		t.Fatalf("add-vector: %v\n%s", err, out)
	}
	if !strings.Contains(out, "v3") {
		t.Fatalf("expected v3 after add-vector:\n%s", out)
	}

	out, err = runCLI(t, "set-confidence", short, "--db", db,
		"--hypothesis", "H1", "--confidence", "0.7")
	if err != nil {
		t.Fatalf("set-confidence: %v\n%s", err, out)
	}
	if !strings.Contains(out, "v4") || !strings.Contains(out, "0.60 -> 0.70") {
		t.Fatalf("unexpected set-confidence output:\n%s", out)
	}

	// Earlier versions stay readable after revisions. Runs before the
	// history call: flag values persist across in-process executions and
	// --history would stick for the rest of this test.
	out, err = runCLI(t, "inspect", short, "--db", db, "--version", "1")
	if err != nil {
		t.Fatalf("inspect v1: %v\n%s", err, out)
	}
	if !strings.Contains(out, "(v1)") {
		t.Fatalf("expected v1 detail:\n%s", out)
	}

	out, err = runCLI(t, "inspect", short, "--db", db, "--history")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if !strings.Contains(out, "History of "+short) {
		t.Fatalf("unexpected history output:\n%s", out)
	}
}

func TestAddHypothesisRejectsSecondPrimary(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "nexus.db")

	out, err := runCLI(t, "init", "-f", writeChainFile(t, dir), "--db", db)
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	short := shortIDFrom(t, out)

	out, err = runCLI(t, "add-hypothesis", short, "--db", db,
		"-s", "Insider staging the access")
	if err != nil {
		t.Fatalf("add-hypothesis: %v\n%s", err, out)
	}
	if !strings.Contains(out, "H3") {
		t.Fatalf("expected hypothesis H3:\n%s", out)
	}

	_, err = runCLI(t, "add-hypothesis", short, "--db", db,
		"-s", "A rival primary explanation", "--primary")
	if err == nil {
		t.Fatal("expected second primary to be rejected")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dbA := filepath.Join(dir, "a.db")
	dbB := filepath.Join(dir, "b.db")

	out, err := runCLI(t, "simulate", "--db", dbA, "--name", "Exercise Blue Sky Export")
	if err != nil {
		t.Fatalf("simulate: %v\n%s", err, out)
	}
	short := shortIDFrom(t, out)

	docPath := filepath.Join(dir, "chain.yaml")
	out, err = runCLI(t, "export", short, "--db", dbA, "--format", "yaml", "-o", docPath)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}

	out, err = runCLI(t, "import", "-f", docPath, "--db", dbB)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if shortIDFrom(t, out) != short {
		t.Fatalf("import changed identity:\n%s", out)
	}

	// Same id and version twice is a conflict, not an overwrite.
	if _, err := runCLI(t, "import", "-f", docPath, "--db", dbB); err == nil {
		t.Fatal("expected duplicate import to fail")
	}
}

func TestExportMarkdownToStdout(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nexus.db")

	out, err := runCLI(t, "simulate", "--db", db, "--name", "Exercise Blue Sky Report")
	if err != nil {
		t.Fatalf("simulate: %v\n%s", err, out)
	}
	short := shortIDFrom(t, out)

	out, err = runCLI(t, "export", short, "--db", db, "--format", "md", "-o", "-")
	if err != nil {
		t.Fatalf("export md: %v\n%s", err, out)
	}
	for _, want := range []string{
		"# Threat Assessment: Exercise Blue Sky Report",
		"## Inference Pressure",
		"## Cognitive Audit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "export", short, "--db", db, "--format", "dot", "-o", "-")
	if err != nil {
		t.Fatalf("export dot: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "digraph assessment {") {
		t.Fatalf("unexpected dot output:\n%s", out)
	}
}

func TestAuditAllAcrossStore(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "nexus.db")

	if out, err := runCLI(t, "simulate", "--db", db, "--name", "Exercise Blue Sky A"); err != nil {
		t.Fatalf("simulate: %v\n%s", err, out)
	}
	if out, err := runCLI(t, "init", "-f", writeChainFile(t, dir), "--db", db); err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}

	out, err := runCLI(t, "audit", "--all", "--db", db)
	if err != nil {
		t.Fatalf("audit --all: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 audited, 2 clean") {
		t.Fatalf("unexpected batch audit output:\n%s", out)
	}
}

func TestUnknownAssessmentID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nexus.db")

	if out, err := runCLI(t, "simulate", "--db", db, "--name", "Exercise Blue Sky Lone"); err != nil {
		t.Fatalf("simulate: %v\n%s", err, out)
	}
	_, err := runCLI(t, "score", "ffffffff", "--db", db)
	if err == nil || !strings.Contains(err.Error(), "no assessment matching") {
		t.Fatalf("expected prefix miss, got %v", err)
	}
}
