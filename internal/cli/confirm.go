package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// readLine reads one trimmed line, respecting context cancellation. The
// reading goroutine may outlive a canceled call; the caller returns
// immediately either way.
func readLine(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		line, err := bufio.NewReader(r).ReadString('\n')
		resultCh <- result{value: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && res.value == "" {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything other than "y" or "yes" counts as no.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s (y/N): ", prompt)

	line, err := readLine(ctx, in)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ConfirmPhrase requires the user to type an exact phrase. Used in front of
// destructive operations where a stray "y" must not be enough.
func ConfirmPhrase(ctx context.Context, in io.Reader, out io.Writer, prompt, phrase string) (bool, error) {
	fmt.Fprintf(out, "%s\nType %q to continue: ", prompt, phrase)

	line, err := readLine(ctx, in)
	if err != nil {
		return false, err
	}

	return line == phrase, nil
}
