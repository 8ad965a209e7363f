package buffer

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Buffer is a read-only, random-access view over the bytes of one document.
type Buffer struct {
	filename string
	data     []byte
}

func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

func Open(filename string) (*Buffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	return &Buffer{
		filename: filename,
		data:     data,
	}, nil
}

func (b *Buffer) Filename() string {
	return b.filename
}

func (b *Buffer) Size() int64 {
	return int64(len(b.data))
}

func (b *Buffer) GetByte(offset int64) (byte, bool) {
	if offset < 0 || offset >= int64(len(b.data)) {
		return 0, false
	}
	return b.data[offset], true
}

// GetBytes returns up to count bytes at offset. Fewer bytes come back only
// when the read runs past the end of the data.
func (b *Buffer) GetBytes(offset int64, count int) []byte {
	if offset < 0 || offset >= int64(len(b.data)) || count <= 0 {
		return nil
	}
	end := offset + int64(count)
	if end > int64(len(b.data)) {
		end = int64(len(b.data))
	}
	result := make([]byte, end-offset)
	copy(result, b.data[offset:end])
	return result
}

// Find returns the offset of the next match of pattern at or after
// startOffset (forward) or strictly before it (backward), or -1.
func (b *Buffer) Find(pattern []byte, startOffset int64, forward bool) int64 {
	if len(pattern) == 0 || len(b.data) == 0 {
		return -1
	}

	if forward {
		if startOffset < 0 {
			startOffset = 0
		}
		if startOffset >= int64(len(b.data)) {
			return -1
		}
		idx := bytes.Index(b.data[startOffset:], pattern)
		if idx < 0 {
			return -1
		}
		return startOffset + int64(idx)
	}

	end := startOffset - 1 + int64(len(pattern))
	if end > int64(len(b.data)) {
		end = int64(len(b.data))
	}
	if end <= 0 {
		return -1
	}
	return int64(bytes.LastIndex(b.data[:end], pattern))
}

func (b *Buffer) CountMatches(pattern []byte) int {
	if len(pattern) == 0 || len(b.data) == 0 {
		return 0
	}

	count := 0
	for i := 0; i <= len(b.data)-len(pattern); i++ {
		if bytes.Equal(b.data[i:i+len(pattern)], pattern) {
			count++
		}
	}
	return count
}
