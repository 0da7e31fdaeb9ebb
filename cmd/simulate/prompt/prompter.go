package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lars-sto/retransmission-efficiency-simulation/internal/sim"
)

var errNoInput = errors.New("input closed before all parameters were read")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(r), out: w}
}

func (p *prompter) line(msg string) (string, error) {
	fmt.Fprint(p.out, msg)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errNoInput
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// readInt asks until it gets an integer accepted by ok.
func (p *prompter) readInt(msg, complaint string, ok func(int) bool) (int, error) {
	for {
		s, err := p.line(msg)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a whole number.")
			continue
		}
		if !ok(v) {
			fmt.Fprintln(p.out, complaint)
			continue
		}
		return v, nil
	}
}

// readProb asks until it gets a number in [0, 1].
func (p *prompter) readProb(msg string) (float64, error) {
	for {
		s, err := p.line(msg)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !sim.ValidProbability(v) {
			fmt.Fprintln(p.out, "Probability must be between 0 and 1.")
			continue
		}
		return v, nil
	}
}

func (p *prompter) params(variant sim.Variant) (sim.Params, error) {
	params := sim.Params{Variant: variant}
	if variant != sim.VariantFixed && variant != sim.VariantMarkov {
		return params, fmt.Errorf("%w: %q", sim.ErrUnknownVariant, variant)
	}

	var err error
	params.UserData, err = p.readInt("Enter the amount of User Data (u): ",
		"Please Enter an amount greater than 0.", func(v int) bool { return v > 0 })
	if err != nil {
		return params, err
	}
	params.RedundantBits, err = p.readInt("Enter the number of redundant bits (n - k): ",
		"Redundant bits must be greater than or equal to 0.", func(v int) bool { return v >= 0 })
	if err != nil {
		return params, err
	}

	switch variant {
	case sim.VariantFixed:
		if params.ErrorProb, err = p.readProb("Enter the bit error rate (p): "); err != nil {
			return params, err
		}
	case sim.VariantMarkov:
		if params.PG, err = p.readProb("Enter the 'Good' state bit error rate (pg): "); err != nil {
			return params, err
		}
		if params.PB, err = p.readProb("Enter the 'Bad' state bit error rate (pb): "); err != nil {
			return params, err
		}
		params.PGG, params.PBB = sim.DefaultPersistence, sim.DefaultPersistence
	}
	return params, params.Validate()
}
