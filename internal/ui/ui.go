// Package ui implements the interactive picker used by the history
// command. Items are piped to fzf via stdin as plain text; no
// shell-interpreted preview strings or commands carry remote data.
// When fzf is not installed, a plain numbered prompt on stdin is used
// instead.
package ui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Select presents items and returns the chosen index.
func Select(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return promptSelect(prompt, items)
	}
	return fzfSelect(fzfPath, prompt, items)
}

func fzfSelect(fzfPath, prompt string, items []string) (int, error) {
	// Number the items so the index survives the round trip through fzf.
	var input strings.Builder
	for i, item := range items {
		fmt.Fprintf(&input, "%d\t%s\n", i, item)
	}

	cmd := exec.Command(fzfPath,
		"--prompt", prompt+" > ",
		"--height", "40%",
		"--reverse",
		"--with-nth", "2..",
		"--delimiter", "\t",
		"--no-multi",
		"--cycle",
	)

	cmd.Stdin = strings.NewReader(input.String())
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 130 {
			return -1, fmt.Errorf("selection cancelled")
		}
		return -1, fmt.Errorf("fzf failed: %w", err)
	}

	selected := strings.TrimSpace(stdout.String())
	if selected == "" {
		return -1, fmt.Errorf("no selection made")
	}

	parts := strings.SplitN(selected, "\t", 2)
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1, fmt.Errorf("parsing selection index: %w", err)
	}
	if idx < 0 || idx >= len(items) {
		return -1, fmt.Errorf("selection index %d out of range", idx)
	}

	return idx, nil
}

// promptSelect is the fallback when fzf is missing: a numbered list and
// a single line read from stdin.
func promptSelect(prompt string, items []string) (int, error) {
	for i, item := range items {
		fmt.Fprintf(os.Stderr, "%3d) %s\n", i+1, item)
	}
	fmt.Fprintf(os.Stderr, "%s [1-%d]: ", prompt, len(items))

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return -1, fmt.Errorf("reading selection: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(items) {
		return -1, fmt.Errorf("invalid selection %q", strings.TrimSpace(line))
	}
	return n - 1, nil
}
