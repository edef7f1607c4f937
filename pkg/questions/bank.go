package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyBank is returned when a bank file defines neither questions nor a
// pool.
var ErrEmptyBank = errors.New("questions: bank defines no questions")

// Bank is a question file. Questions, when present, are used verbatim;
// otherwise Sample entries are drawn from Pool.
type Bank struct {
	Questions []string `json:"questions" yaml:"questions"`
	Pool      []string `json:"pool" yaml:"pool"`
	Sample    int      `json:"sample" yaml:"sample"`
}

// LoadBank reads a JSON or YAML bank from fsys.
func LoadBank(fsys fs.FS, path string) (Bank, error) {
	if fsys == nil {
		return Bank{}, errors.New("questions: bank filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Bank{}, fmt.Errorf("questions: read bank %s: %w", path, err)
	}
	return ParseBank(data, path)
}

// ParseBank decodes a bank, trying JSON first and YAML second. The source is
// only used in error messages.
func ParseBank(data []byte, source string) (Bank, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Bank{}, fmt.Errorf("questions: bank %s is empty", source)
	}

	var bank Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		bank = Bank{}
		if err := yaml.Unmarshal(data, &bank); err != nil {
			return Bank{}, fmt.Errorf("questions: parse bank %s: invalid JSON or YAML", source)
		}
	}

	bank.Questions = trimAll(bank.Questions)
	bank.Pool = trimAll(bank.Pool)
	if len(bank.Questions) == 0 && len(bank.Pool) == 0 {
		return Bank{}, fmt.Errorf("%w (%s)", ErrEmptyBank, source)
	}
	return bank, nil
}

// Source turns the bank into a Source. A pool without an explicit sample size
// draws DefaultSampleSize entries, capped at the pool length.
func (b Bank) Source(options ...SampleOption) (Source, error) {
	if len(b.Questions) > 0 {
		return Fixed(b.Questions...), nil
	}
	if len(b.Pool) == 0 {
		return nil, ErrEmptyBank
	}
	k := b.Sample
	if k == 0 {
		k = min(DefaultSampleSize, len(b.Pool))
	}
	return NewSample(b.Pool, k, options...)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
