// Package numio 정수 시퀀스의 텍스트 입출력.
package numio

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/rlaau/wavesort/wavesort"
)

const bufSize = 64 * 1024

// ReadInts 공백/개행으로 구분된 10진 정수를 읽는다.
// 정수가 아닌 토큰은 wavesort.ErrInvalidInput.
func ReadInts(r io.Reader) ([]int64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, bufSize), bufio.MaxScanTokenSize)
	scanner.Split(bufio.ScanWords)

	var data []int64
	for n := 1; scanner.Scan(); n++ {
		tok := scanner.Text()
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(wavesort.ErrInvalidInput, "token %d %q: %v", n, tok, err)
		}
		data = append(data, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read ints")
	}
	if data == nil {
		data = []int64{}
	}
	return data, nil
}

// WriteInts 한 줄에 하나씩 쓴다
func WriteInts(w io.Writer, data []int64) error {
	writer := bufio.NewWriterSize(w, bufSize)
	buf := make([]byte, 0, 24)
	for _, v := range data {
		buf = strconv.AppendInt(buf[:0], v, 10)
		buf = append(buf, '\n')
		if _, err := writer.Write(buf); err != nil {
			return errors.Wrap(err, "write ints")
		}
	}
	return errors.Wrap(writer.Flush(), "flush ints")
}

// ReadFile 파일에서 정수 읽기
func ReadFile(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ReadInts(f)
}

// WriteFile 파일에 정수 쓰기
func WriteFile(path string, data []int64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := WriteInts(f, data); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
