package runtime

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed censored/*
var censoredFolder embed.FS

// CensoredData carries the loaded dictionary plus the list names for logging.
type CensoredData struct {
	Words []string
	Lists []string
}

// CensoredLoader reads banned word lists, one word per line, from a filesystem.
type CensoredLoader struct {
	fs fs.FS
}

func NewCensoredLoader(f fs.FS) *CensoredLoader {
	return &CensoredLoader{fs: f}
}

// DefaultCensoredLoader reads the lists embedded in the binary.
func DefaultCensoredLoader() *CensoredLoader {
	return NewCensoredLoader(censoredFolder)
}

// LoadAll parses every .txt file of dir into a unique list of words.
// The file name without extension names the list (e.g. "ja.txt" -> "ja").
func (l *CensoredLoader) LoadAll(dir string) (*CensoredData, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	var lists []string
	uniqueWords := make(map[string]struct{})
	var words []string

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		lists = append(lists, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(l.fs, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// bufio.Scanner copes with both \n and \r\n
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if _, ok := uniqueWords[line]; !ok {
				uniqueWords[line] = struct{}{}
				words = append(words, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	return &CensoredData{Words: words, Lists: lists}, nil
}
