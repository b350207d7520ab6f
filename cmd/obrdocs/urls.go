package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/obrtools/obrdocs"
)

// ReadURLsFile reads one URL per line. Blank lines are skipped and # starts
// a comment, either on its own line or trailing a URL.
func ReadURLsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, obrdocs.Errorf(obrdocs.ENOTFOUND, "urls file not found: %s", path)
		}
		return nil, obrdocs.Errorf(obrdocs.EINTERNAL, "opening urls file: %v", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, obrdocs.Errorf(obrdocs.EINTERNAL, "reading urls file: %v", err)
	}
	return urls, nil
}
