package bench

import (
	"bufio"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
)

var algoTitles = map[string]string{
	AlgoWaveSort:          "웨이브소트",
	AlgoQuickSort:         "퀵소트",
	AlgoParallelQuickSort: "병렬퀵소트",
	AlgoMergeSort:         "머지소트",
	AlgoParallelMergeSort: "병렬머지소트",
}

var storageTitles = map[string]string{
	StorageMemory: "인메모리",
	StorageFile:   "파일",
	StorageKV:     "KV 저장소",
}

func titleOr(m map[string]string, key string) string {
	if t, ok := m[key]; ok {
		return t
	}
	return key
}

// group 보고서의 한 절 (저장 방식 × 크기)
type group struct {
	storage string
	size    int
}

func groupsOf(results []Result) []group {
	var gs []group
	for _, r := range results {
		g := group{r.StorageType, r.DataSize}
		if !slices.Contains(gs, g) {
			gs = append(gs, g)
		}
	}
	slices.SortFunc(gs, func(a, b group) int {
		return cmp.Or(cmp.Compare(a.size, b.size), cmp.Compare(a.storage, b.storage))
	})
	return gs
}

// algorithmsOf 결과에 나온 알고리즘 (기본 순서 우선, 나머지는 이름순)
func algorithmsOf(results []Result) []string {
	var known, extra []string
	for _, r := range results {
		switch {
		case isAlgorithm(r.Algorithm):
			if !slices.Contains(known, r.Algorithm) {
				known = append(known, r.Algorithm)
			}
		case !slices.Contains(extra, r.Algorithm):
			extra = append(extra, r.Algorithm)
		}
	}
	slices.SortFunc(known, func(a, b string) int {
		return cmp.Compare(slices.Index(algorithmNames, a), slices.Index(algorithmNames, b))
	})
	slices.Sort(extra)
	return append(known, extra...)
}

// Summary 그룹별 알고리즘 평균
type Summary struct {
	Algorithm   string
	StorageType string
	DataSize    int
	Runs        int
	Failures    int
	AvgDuration time.Duration
	AvgMemory   uint64
}

// Summarize 저장 방식 × 크기 × 알고리즘별 평균. 실패한 실행은 평균에서 뺀다.
func Summarize(results []Result) []Summary {
	var out []Summary
	for _, g := range groupsOf(results) {
		for _, algo := range algorithmsOf(results) {
			s := Summary{Algorithm: algo, StorageType: g.storage, DataSize: g.size}
			var total time.Duration
			var mem uint64
			for _, r := range results {
				if r.Algorithm != algo || r.StorageType != g.storage || r.DataSize != g.size {
					continue
				}
				if r.Error != "" {
					s.Failures++
					continue
				}
				s.Runs++
				total += r.Duration
				mem += r.MemoryUsage
			}
			if s.Runs == 0 && s.Failures == 0 {
				continue
			}
			if s.Runs > 0 {
				s.AvgDuration = total / time.Duration(s.Runs)
				s.AvgMemory = mem / uint64(s.Runs)
			}
			out = append(out, s)
		}
	}
	return out
}

// WriteMarkdown 마크다운 보고서
func WriteMarkdown(w io.Writer, results []Result, now time.Time) error {
	var b strings.Builder

	b.WriteString("# 정렬 알고리즘 벤치마크 결과\n\n")
	fmt.Fprintf(&b, "실행 시간: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "CPU 코어 수: %d\n", runtime.NumCPU())
	fmt.Fprintf(&b, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))

	for _, g := range groupsOf(results) {
		fmt.Fprintf(&b, "## %s - %s개 데이터\n\n", titleOr(storageTitles, g.storage), humanize.Comma(int64(g.size)))
		b.WriteString("| 알고리즘 | 테스트 | 실행시간 | 메모리사용량 | 할당횟수 | 고루틴수 | 검증 |\n")
		b.WriteString("|----------|--------|----------|--------------|----------|----------|------|\n")

		for _, algo := range algorithmsOf(results) {
			for _, r := range results {
				if r.Algorithm != algo || r.StorageType != g.storage || r.DataSize != g.size {
					continue
				}
				fmt.Fprintf(&b, "| %s | %d | %v | %s | %s | %d | %s |\n",
					titleOr(algoTitles, algo), r.TestRun, r.Duration, humanize.IBytes(r.MemoryUsage),
					humanize.Comma(int64(r.Mallocs)), r.GoroutineNum, verdict(r))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## 요약 통계\n\n")
	b.WriteString("| 저장 방식 | 데이터 | 알고리즘 | 평균 실행시간 | 평균 메모리사용량 | 실패 |\n")
	b.WriteString("|-----------|--------|----------|---------------|-------------------|------|\n")
	for _, s := range Summarize(results) {
		fmt.Fprintf(&b, "| %s | %s | %s | %v | %s | %d |\n",
			titleOr(storageTitles, s.StorageType), humanize.Comma(int64(s.DataSize)),
			titleOr(algoTitles, s.Algorithm), s.AvgDuration, humanize.IBytes(s.AvgMemory), s.Failures)
	}

	writer := bufio.NewWriterSize(w, 32*1024)
	if _, err := writer.WriteString(b.String()); err != nil {
		return errors.Wrap(err, "write markdown")
	}
	return errors.Wrap(writer.Flush(), "flush markdown")
}

func verdict(r Result) string {
	switch {
	case r.Error != "":
		return "실패: " + r.Error
	case r.Verified:
		return "OK"
	default:
		return "-"
	}
}

// WriteJSON 들여쓰기 JSON 보고서
func WriteJSON(w io.Writer, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(results), "write json")
}
