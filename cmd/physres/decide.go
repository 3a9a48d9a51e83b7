package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/round"
)

// promptDecider asks decision questions on a terminal. An empty or
// unparsable line is no answer.
type promptDecider struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPromptDecider(in io.Reader, out io.Writer) *promptDecider {
	return &promptDecider{in: bufio.NewScanner(in), out: out}
}

func (d *promptDecider) Decide(ctx context.Context, req round.Request) (round.Answer, error) {
	if err := ctx.Err(); err != nil {
		return round.NoAnswer, err
	}
	switch req.Kind {
	case round.RequestDomino:
		fmt.Fprintf(d.out, "player %d, unit %d: %s\n", req.Owner, req.Unit, req.Prompt)
		for i, h := range req.Hexes {
			fmt.Fprintf(d.out, "  [%d] %s\n", i, h)
		}
		fmt.Fprint(d.out, "step aside to (blank to stay): ")
	case round.RequestAMS:
		fmt.Fprintf(d.out, "player %d, unit %d: %s [y/N]: ", req.Owner, req.Unit, req.Prompt)
	}
	if !d.in.Scan() {
		if err := d.in.Err(); err != nil {
			return round.NoAnswer, err
		}
		return round.NoAnswer, round.ErrNoResponse
	}
	return parseAnswer(req, d.in.Text()), nil
}

func parseAnswer(req round.Request, line string) round.Answer {
	line = strings.TrimSpace(strings.ToLower(line))
	switch req.Kind {
	case round.RequestAMS:
		if line == "y" || line == "yes" {
			return round.Answer{Choice: 1}
		}
		return round.Answer{Choice: 0}
	case round.RequestDomino:
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n >= len(req.Hexes) {
			return round.NoAnswer
		}
		return round.Answer{Choice: n}
	}
	return round.NoAnswer
}
