package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// confirm prompts the user with a yes/no question and reads the answer from
// stdin. Returns ErrCancelled when the answer is not an explicit yes.
func confirm(prompt string) error {
	fmt.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return nil
	}
	return ErrCancelled
}

// joinQuery joins command arguments into a single search query
func joinQuery(args []string) string {
	return strings.Join(args, " ")
}
