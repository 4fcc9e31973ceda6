package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaau/wavesort/bench"
	"github.com/rlaau/wavesort/store"
	"github.com/rlaau/wavesort/wavesort"
)

// runCLI 새 명령 트리로 실행하고 stdout/stderr를 돌려준다
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	return strings.Fields(s)
}

func TestSortCommand(t *testing.T) {
	in := "5 3 8 1 9 2 7 4 6 0 15 12 11 14 13 10 20 19 18 17 16"
	out, _, err := runCLI(t, in, "sort", "--seed", "1")
	require.NoError(t, err)

	var want []string
	for i := 0; i <= 20; i++ {
		want = append(want, strconv.Itoa(i))
	}
	assert.Equal(t, want, lines(out))
}

func TestSortCommandFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte("3\n-1\n2\n"), 0o644))

	_, stderr, err := runCLI(t, "", "sort", "-i", input, "-o", output, "--stats")
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "-1\n2\n3\n", string(got))

	var st wavesort.Stats
	require.NoError(t, json.Unmarshal([]byte(stderr), &st))
	assert.Equal(t, 1, st.Fallbacks)
}

func TestSortCommandInvalidInput(t *testing.T) {
	_, _, err := runCLI(t, "1 2 three", "sort")
	require.Error(t, err)
	assert.ErrorIs(t, err, wavesort.ErrInvalidInput)
}

func TestSortCommandGuard(t *testing.T) {
	in := strings.Repeat("7 ", 10) + strings.Repeat("1000 999 3 ", 400)
	_, _, err := runCLI(t, in, "sort", "--seed", "3", "--max-depth", "1")
	assert.ErrorIs(t, err, wavesort.ErrResourceExhausted)
}

func TestGenCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "gen", "-n", "50", "--seed", "7", "--max", "100")
	require.NoError(t, err)
	vals := lines(out)
	require.Len(t, vals, 50)

	again, _, err := runCLI(t, "", "gen", "-n", "50", "--seed", "7", "--max", "100")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, _, err = runCLI(t, "", "gen", "--max", "0")
	assert.Error(t, err)
}

func TestGenSortFromStore(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range store.Backends() {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(dir, backend)
			out, _, err := runCLI(t, "", "gen", "-n", "300", "--store", backend, "--store-path", path, "--name", "ds")
			require.NoError(t, err)
			assert.Contains(t, out, `stored dataset "ds" (300 values)`)

			out, _, err = runCLI(t, "", "sort", "--store", backend, "--store-path", path, "--dataset", "ds", "--seed", "2")
			require.NoError(t, err)
			vals := lines(out)
			require.Len(t, vals, 300)

			want := bench.GenerateRandomData(42, 300, 1000000)
			var got []int64
			for _, v := range vals {
				n, err := strconv.ParseInt(v, 10, 64)
				require.NoError(t, err)
				got = append(got, n)
			}
			assert.ElementsMatch(t, want, got)
			for i := 1; i < len(got); i++ {
				require.LessOrEqual(t, got[i-1], got[i])
			}
		})
	}

	_, _, err := runCLI(t, "", "sort", "--dataset", "ds")
	assert.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "report.md")
	js := filepath.Join(dir, "report.json")
	kv := filepath.Join(dir, "kv")

	_, _, err := runCLI(t, "", "gen", "-n", "64", "--store", "pebble", "--store-path", kv, "--name", "stored")
	require.NoError(t, err)

	out, _, err := runCLI(t, "", "bench",
		"--sizes", "100,500", "--runs", "1", "--algos", "wavesort,quicksort",
		"--via-file", "--dataset", "stored",
		"--store", "pebble", "--store-path", kv,
		"--md", md, "--json", js)
	require.NoError(t, err)
	assert.Contains(t, out, "벤치마크 완료: 6회 실행, 실패 0회")

	report, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.Contains(t, string(report), "## 파일 - 100개 데이터")
	assert.Contains(t, string(report), "## KV 저장소 - 64개 데이터")

	raw, err := os.ReadFile(js)
	require.NoError(t, err)
	var results []bench.Result
	require.NoError(t, json.Unmarshal(raw, &results))
	assert.Len(t, results, 6)

	out, _, err = runCLI(t, "", "results", "--store", "pebble", "--store-path", kv, "--json")
	require.NoError(t, err)
	var listed struct {
		Datasets []string       `json:"datasets"`
		Results  []bench.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.Equal(t, []string{"stored"}, listed.Datasets)
	assert.Len(t, listed.Results, 6)

	out, _, err = runCLI(t, "", "results", "--store", "pebble", "--store-path", kv)
	require.NoError(t, err)
	assert.Contains(t, out, "ALGORITHM")
	assert.Contains(t, out, "wavesort")
}

func TestBenchCommandErrors(t *testing.T) {
	_, _, err := runCLI(t, "", "bench", "--dataset", "x", "--md", "", "--json", "")
	assert.Error(t, err)

	_, _, err = runCLI(t, "", "bench", "--algos", "bogosort", "--md", "", "--json", "")
	assert.ErrorIs(t, err, bench.ErrUnknownAlgorithm)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wavesort dev")
}
