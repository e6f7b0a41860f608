// Package clangformat pipes generated C source through clang-format.
package clangformat

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Format runs clang-format over src and returns the formatted text.
// It fails when clang-format is not installed; callers decide whether that
// is fatal or worth falling back to the unformatted text.
func Format(ctx context.Context, src []byte) ([]byte, error) {
	path, err := exec.LookPath("clang-format")
	if err != nil {
		return nil, fmt.Errorf("clang-format not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("clang-format: %w\n%s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
