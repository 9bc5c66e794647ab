package datasource

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Line is a single non-blank line of a data file.
type Line struct {
	Num  int // 1-based
	Text string
}

// Source gives access to the data files of a race.
type Source struct {
	fsys fs.FS
	desc string
}

func NewDirSource(dir string) *Source {
	return &Source{fsys: os.DirFS(dir), desc: dir}
}

func NewSource(fsys fs.FS, desc string) *Source {
	return &Source{fsys: fsys, desc: desc}
}

// Path returns the name of file for use in messages.
func (s *Source) Path(file string) string {
	if s.desc == "" {
		return file
	}
	return path.Join(s.desc, file)
}

// ReadLines reads the complete file and returns all non-blank lines.
// Trailing whitespace (including \r) is removed from each line.
func (s *Source) ReadLines(file string) ([]Line, error) {
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return nil, NewFileError(s.Path(file), err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	ret := make([]Line, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimRight(scanner.Text(), " \t\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		ret = append(ret, Line{Num: num, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, NewFileError(s.Path(file), err)
	}
	return ret, nil
}
