// Package questions supplies the ordered prompts appended to a registration
// schema. Every Source fixes its output when it is constructed: a sampled
// source draws once and then repeats that draw for the life of the process.
package questions

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DefaultQuestions is the fixed question list used when no other source is
// configured.
var DefaultQuestions = []string{
	"Where did you hear about this site?",
	"What college did you attend?",
	"What year did you graduate?",
}

// DefaultPool is the pool sampled by the randomized source.
var DefaultPool = []string{"where?", "when?", "why?", "what?", "who?", "how?"}

// DefaultSampleSize is the number of questions drawn from DefaultPool.
const DefaultSampleSize = 3

// ErrSampleSize reports a sample size outside [0, len(pool)].
var ErrSampleSize = errors.New("questions: sample size out of range")

// Source supplies the ordered questions for a form.
type Source interface {
	Questions() []string
}

type fixedSource struct {
	questions []string
}

// Fixed returns a Source that always yields the provided questions.
func Fixed(questions ...string) Source {
	return fixedSource{questions: clone(questions)}
}

// None returns a Source with no questions, leaving only the credential pair.
func None() Source {
	return fixedSource{}
}

func (s fixedSource) Questions() []string {
	return clone(s.questions)
}

// SampleOption configures NewSample.
type SampleOption func(*sampleConfig)

type sampleConfig struct {
	rng *rand.Rand
}

// WithRand supplies the random source used for the draw.
func WithRand(rng *rand.Rand) SampleOption {
	return func(cfg *sampleConfig) {
		if rng != nil {
			cfg.rng = rng
		}
	}
}

// NewSample draws k distinct questions from pool, without replacement and in
// random order. The draw happens here, once; the returned Source repeats it on
// every call.
func NewSample(pool []string, k int, options ...SampleOption) (Source, error) {
	if k < 0 || k > len(pool) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSampleSize, k, len(pool))
	}

	cfg := sampleConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	perm := permutation(cfg.rng, len(pool))
	picked := make([]string, 0, k)
	for _, idx := range perm[:k] {
		picked = append(picked, pool[idx])
	}
	return fixedSource{questions: picked}, nil
}

func permutation(rng *rand.Rand, n int) []int {
	if rng != nil {
		return rng.Perm(n)
	}
	return rand.Perm(n)
}

func clone(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
