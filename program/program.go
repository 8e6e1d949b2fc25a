// Package program reads Intcode program images from their text form: a
// comma-separated list of signed decimal integers.
package program

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseString parses the text form of a program image. Whitespace around
// each field, including a trailing newline, is ignored.
func ParseString(src string) ([]int64, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty program")
	}
	fields := strings.Split(src, ",")
	image := make([]int64, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, fmt.Errorf("field %d: empty value", i)
		}
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		image[i] = v
	}
	return image, nil
}

// Parse reads and parses a program image from r.
func Parse(r io.Reader) ([]int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// Load reads and parses the program image stored in the named file.
func Load(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	image, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return image, nil
}

// Format returns the text form of an image.
func Format(image []int64) string {
	var b strings.Builder
	for i, v := range image {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}
