package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rppg_backend/internal/feature/heartrate/transport/http/dto"
)

// signalInput is a parsed trace with its optional sample rate.
type signalInput struct {
	samples []float64
	fs      *float64
}

// readInput loads a trace from path, or from stdin when path is "-".
func readInput(stdin io.Reader, path string) (*signalInput, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return parseInput(data)
}

// parseInput accepts an /analyze request body, a bare JSON array, or plain
// numbers separated by whitespace or commas. Lines starting with # are skipped.
func parseInput(data []byte) (*signalInput, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("input is empty")
	}

	switch trimmed[0] {
	case '{':
		var req dto.AnalyzeRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, fmt.Errorf("parse JSON object: %w", err)
		}
		if req.GreenSignal == nil {
			return nil, errors.New(`JSON object has no "green_signal"`)
		}
		return &signalInput{samples: req.GreenSignal, fs: req.Fs}, nil
	case '[':
		var samples []float64
		if err := json.Unmarshal(trimmed, &samples); err != nil {
			return nil, fmt.Errorf("parse JSON array: %w", err)
		}
		return &signalInput{samples: samples}, nil
	}

	var samples []float64
	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not a number", line, f)
			}
			samples = append(samples, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &signalInput{samples: samples}, nil
}
