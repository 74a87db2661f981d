package scoring

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

var (
	// ErrMalformedSubmission marks a body that is not a url-encoded set of
	// non-negative integers.
	ErrMalformedSubmission = errors.New("malformed submission")
	// ErrBodyTooLarge marks a body over the configured limit.
	ErrBodyTooLarge = errors.New("submission body too large")
)

// DefaultMaxBodyBytes bounds a submission body.
const DefaultMaxBodyBytes int64 = 8 * 1024

// Submission is a parsed form: question key to its answers.
type Submission map[string][]int

// Total sums every answer of every question.
func (s Submission) Total() int {
	total := 0
	for _, answers := range s {
		for _, a := range answers {
			total += a
		}
	}
	return total
}

// Result is a scored submission.
type Result struct {
	Score    int
	Category Band
}

// Engine scores submissions against a threshold table.
type Engine struct {
	table        *Table
	maxBodyBytes int64
}

// NewEngine creates an engine. A nil table selects DefaultTable and a
// non-positive limit selects DefaultMaxBodyBytes.
func NewEngine(table *Table, maxBodyBytes int64) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Engine{table: table, maxBodyBytes: maxBodyBytes}
}

// Table returns the engine's threshold table.
func (e *Engine) Table() *Table { return e.table }

// MaxBodyBytes returns the body limit.
func (e *Engine) MaxBodyBytes() int64 { return e.maxBodyBytes }

// ReadBody reads at most MaxBodyBytes from r. A longer body is
// ErrBodyTooLarge.
func (e *Engine) ReadBody(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, e.maxBodyBytes+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("failed to read submission: %w", err)
	}
	if int64(len(data)) > e.maxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}

// Score parses body and classifies the total. Any malformed value rejects
// the whole submission.
func (e *Engine) Score(body []byte) (Result, error) {
	sub, err := Parse(body)
	if err != nil {
		return Result{}, err
	}
	total := sub.Total()
	return Result{Score: total, Category: e.table.Classify(total)}, nil
}

// Parse decodes a url-encoded body into a Submission. Values must be
// non-negative decimal integers. An empty body is an empty submission.
func Parse(body []byte) (Submission, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSubmission, err)
	}
	sub := make(Submission, len(values))
	total := 0
	for key, raw := range values {
		answers := make([]int, 0, len(raw))
		for _, v := range raw {
			n, err := parseAnswer(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrMalformedSubmission, key, err)
			}
			if n > math.MaxInt32-total {
				return nil, fmt.Errorf("%w: %s: total out of range", ErrMalformedSubmission, key)
			}
			total += n
			answers = append(answers, n)
		}
		sub[key] = answers
	}
	return sub, nil
}

func parseAnswer(v string) (int, error) {
	if v == "" {
		return 0, errors.New("empty value")
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, fmt.Errorf("not a number: %q", v)
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("out of range: %q", v)
	}
	return n, nil
}
