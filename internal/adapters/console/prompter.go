// Package console implements the line-oriented prompt loop over injected
// input and output streams, so sessions are testable without a live
// terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/phonepick/internal/domain/model"
	"github.com/okian/phonepick/pkg/metrics"
)

// ErrEndOfInput signals that the input stream closed while a prompt was
// waiting for a line. Callers must terminate the session instead of
// re-prompting.
var ErrEndOfInput = errors.New("input stream closed")

// acceptToken is the only verdict treated as acceptance; anything else is a
// rejection.
const acceptToken = "yes"

// Prompter elicits and validates the user's preferences. Malformed input is
// handled locally by re-prompting with guidance; only end-of-stream and
// context cancellation propagate.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// ReadOperatingSystem prompts until the user supplies a supported operating
// system, case-insensitively. The returned value is normalized to uppercase.
func (p *Prompter) ReadOperatingSystem(ctx context.Context) (model.OperatingSystem, error) {
	for {
		p.Inform("Which operating system do you prefer? (ANDROID/IOS)")
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		os, err := model.ParseOperatingSystem(line)
		if err != nil {
			metrics.RecordInvalidInput()
			p.Inform("Please answer ANDROID or IOS.")
			continue
		}
		return os, nil
	}
}

// ReadMaxChargingTime prompts until the user supplies a numeric value.
// Any float-parseable literal passes; no domain bound is applied, so
// negative values are accepted.
func (p *Prompter) ReadMaxChargingTime(ctx context.Context) (float64, error) {
	for {
		p.Inform("What is the maximum charging time you tolerate, in minutes?")
		line, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}

		minutes, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			metrics.RecordInvalidInput()
			p.Inform("Please enter a number of minutes.")
			continue
		}
		return minutes, nil
	}
}

// Confirm presents a recommended device and reads the verdict. The trimmed,
// case-insensitive token "yes" accepts; everything else rejects.
func (p *Prompter) Confirm(ctx context.Context, device string) (bool, error) {
	p.Inform(fmt.Sprintf("We recommend: %s. Are you happy with this phone? (yes/no)", device))
	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), acceptToken), nil
}

// Inform writes a single output line to the user.
func (p *Prompter) Inform(msg string) {
	fmt.Fprintln(p.out, msg)
}

// readLine reads one line, mapping a closed stream to ErrEndOfInput.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrEndOfInput
	}
	return p.in.Text(), nil
}
