package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(fsys afero.Fs, path string, maxLines int) ([]string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed error log line.
type Entry struct {
	Timestamp string
	Level     string
	Message   string
}

const separator = " - "

// Parse splits a "<timestamp> - <LEVEL> - <message>" line. Lines that do
// not follow the format come back whole in Message with ok false.
func Parse(line string) (Entry, bool) {
	ts, rest, found := strings.Cut(line, separator)
	if !found {
		return Entry{Message: line}, false
	}
	level, msg, found := strings.Cut(rest, separator)
	if !found || level == "" || strings.ToUpper(level) != level {
		return Entry{Message: line}, false
	}
	return Entry{Timestamp: ts, Level: level, Message: msg}, true
}
