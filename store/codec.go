package store

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

var (
	datasetPrefix = []byte("ds/")
	resultPrefix  = []byte("res/")
)

// Digest 데이터셋 내용의 xxhash64
func Digest(data []int64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range data {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// encodeDataset [개수 8B][값 8B * n][xxhash 8B], 모두 빅엔디언
func encodeDataset(data []int64) []byte {
	out := make([]byte, 8+8*len(data)+8)
	binary.BigEndian.PutUint64(out, uint64(len(data)))
	for i, v := range data {
		binary.BigEndian.PutUint64(out[8+8*i:], uint64(v))
	}
	body := out[:len(out)-8]
	binary.BigEndian.PutUint64(out[len(out)-8:], xxhash.Sum64(body[8:]))
	return out
}

func decodeDataset(raw []byte) ([]int64, error) {
	if len(raw) < 16 || len(raw)%8 != 0 {
		return nil, errors.Wrapf(ErrCorrupt, "dataset length %d", len(raw))
	}
	n := binary.BigEndian.Uint64(raw)
	if n != uint64(len(raw)/8-2) {
		return nil, errors.Wrapf(ErrCorrupt, "dataset count %d, payload %d", n, len(raw)/8-2)
	}
	body := raw[8 : len(raw)-8]
	want := binary.BigEndian.Uint64(raw[len(raw)-8:])
	if got := xxhash.Sum64(body); got != want {
		return nil, errors.Wrapf(ErrCorrupt, "dataset digest %x, want %x", got, want)
	}

	data := make([]int64, n)
	for i := range data {
		data[i] = int64(binary.BigEndian.Uint64(body[8*i:]))
	}
	return data, nil
}

func datasetKey(name string) []byte {
	return append(slices.Clone(datasetPrefix), name...)
}

// resultKey 같은 알고리즘/크기/실행이 키 순서로 모이도록 0 채움
func resultKey(r Result) []byte {
	return fmt.Appendf(slices.Clone(resultPrefix), "%s/%012d/%04d/%020d",
		r.Algorithm, r.DataSize, r.TestRun, r.RecordedAt.UnixNano())
}

func encodeResult(r Result) ([]byte, error) {
	b, err := json.Marshal(r)
	return b, errors.Wrap(err, "encode result")
}

func decodeResult(raw []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return Result{}, errors.Wrapf(ErrCorrupt, "decode result: %v", err)
	}
	return r, nil
}

// prefixEnd prefix로 시작하는 모든 키보다 큰 최소 키
func prefixEnd(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// sortResults 키 순서와 같은 순서 (알고리즘, 크기, 실행, 시각)
func sortResults(rs []Result) {
	slices.SortStableFunc(rs, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(a.Algorithm, b.Algorithm),
			cmp.Compare(a.DataSize, b.DataSize),
			cmp.Compare(a.TestRun, b.TestRun),
			a.RecordedAt.Compare(b.RecordedAt),
		)
	})
}
