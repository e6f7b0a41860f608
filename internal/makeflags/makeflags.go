// Package makeflags extracts compiler flags from a Makefile so clang can be
// invoked the same way the project's own build invokes it.
package makeflags

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var cflagsRe = regexp.MustCompile(`CFLAGS:=(.*)`)

// Extract reads the Makefile at path and returns the flags assigned to its
// CFLAGS variable. Multiple CFLAGS lines accumulate in file order; a Makefile
// without CFLAGS yields no flags.
func Extract(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open makefile: %w", err)
	}
	defer f.Close()

	var flags []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := cflagsRe.FindStringSubmatch(scanner.Text()); m != nil {
			flags = append(flags, strings.Fields(m[1])...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read makefile: %w", err)
	}
	return flags, nil
}
