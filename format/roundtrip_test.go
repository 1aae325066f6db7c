package format

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javasrc/java/syntax"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "", "directory containing additional .java test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testdata renders every file under testdata and expects the
// exact input back.
func TestRoundTrip_Testdata(t *testing.T) {
	files := javaFiles(t, "testdata")
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(testName("testdata", file), func(t *testing.T) {
			source, err := os.ReadFile(file)
			require.NoError(t, err)

			formatted, err := PrettyPrintJava(source)
			require.NoError(t, err)
			assert.Equal(t, string(source), string(formatted))
		})
	}
}

// TestRoundTrip_Testcases checks that formatting the files of an external
// corpus keeps every declaration. Layout may change, so only the node kinds
// are compared.
// Use -testcases to point at a directory and -filter to select files:
// go test ./format -testcases=../../corpus -filter=String
func TestRoundTrip_Testcases(t *testing.T) {
	if testcasesDir == "" {
		t.Skip("no -testcases directory given")
	}
	if os.Getenv("IN_GIT_PRECOMMIT") == "1" {
		t.Skip("skipping roundtrip tests during pre-commit")
	}

	files := javaFiles(t, testcasesDir)
	if len(files) == 0 {
		t.Skipf("no .java files found in %s", testcasesDir)
	}
	for _, file := range files {
		t.Run(testName(testcasesDir, file), func(t *testing.T) {
			runRoundTripTest(t, file)
		})
	}
}

func javaFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".java") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err, "walk %s", dir)
	sort.Strings(files)
	return files
}

func testName(dir, file string) string {
	relPath, err := filepath.Rel(dir, file)
	if err != nil {
		relPath = filepath.Base(file)
	}
	name := strings.ReplaceAll(relPath, string(filepath.Separator), "_")
	return strings.TrimSuffix(name, ".java")
}

func runRoundTripTest(t *testing.T, filename string) {
	source, err := os.ReadFile(filename)
	require.NoError(t, err)

	orig, err := syntax.Parse(context.Background(), source)
	require.NoError(t, err)
	if len(orig.Problems) > 0 {
		t.Skipf("original file has parse errors")
	}

	formatted, err := Source(orig.Root, orig.Source)
	require.NoError(t, err)

	again, err := syntax.Parse(context.Background(), formatted)
	require.NoError(t, err)
	if len(again.Problems) > 0 {
		t.Errorf("formatted output has parse errors:\n%s", formatProblems(again.Problems))
		t.Logf("\n=== Formatted output ===\n%s", formatted)
		return
	}

	diffs := compareNodeCounts(countNodeKinds(orig.Root), countNodeKinds(again.Root))
	if len(diffs) > 0 {
		t.Errorf("node count mismatch after round-trip formatting:\n\n%s", formatDiffs(diffs))
	}
}

// NodeCountDiff is a difference in node counts between two trees.
type NodeCountDiff struct {
	Kind      syntax.NodeKind
	Original  int
	Formatted int
}

func countNodeKinds(node *syntax.Node) map[syntax.NodeKind]int {
	counts := make(map[syntax.NodeKind]int)
	node.Walk(func(n *syntax.Node) bool {
		counts[n.Kind]++
		return true
	})
	return counts
}

func formatProblems(problems []syntax.Problem) string {
	var lines []string
	for _, p := range problems {
		lines = append(lines, "  - "+p.Error())
	}
	return strings.Join(lines, "\n")
}

func compareNodeCounts(original, formatted map[syntax.NodeKind]int) []NodeCountDiff {
	var diffs []NodeCountDiff

	allKinds := make(map[syntax.NodeKind]bool)
	for k := range original {
		allKinds[k] = true
	}
	for k := range formatted {
		allKinds[k] = true
	}

	for kind := range allKinds {
		// Text is split differently once layout changes.
		if kind == syntax.KindText {
			continue
		}
		if original[kind] != formatted[kind] {
			diffs = append(diffs, NodeCountDiff{
				Kind:      kind,
				Original:  original[kind],
				Formatted: formatted[kind],
			})
		}
	}

	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Original-diffs[i].Formatted > diffs[j].Original-diffs[j].Formatted
	})
	return diffs
}

func formatDiffs(diffs []NodeCountDiff) string {
	var sb strings.Builder
	sb.WriteString("Kind                          Original  Formatted  Delta\n")
	sb.WriteString("------------------------------------------------------------\n")
	for _, d := range diffs {
		delta := d.Formatted - d.Original
		sign := "+"
		if delta < 0 {
			sign = ""
		}
		sb.WriteString(fmt.Sprintf("%-30s %8d  %9d  %s%d\n",
			d.Kind.String(), d.Original, d.Formatted, sign, delta))
	}
	return sb.String()
}
