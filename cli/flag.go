package cli

import (
	"strconv"

	"github.com/morikuni/failure/v2"
	"github.com/spf13/pflag"
)

// countFlag is a non-negative integer flag that remembers whether it was given
type countFlag struct {
	IsSet bool
	Value int
}

// String implements pflag.Value.
func (f *countFlag) String() string {
	return strconv.Itoa(f.Value)
}

func (f *countFlag) Set(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return failure.New(InvalidArguments,
			failure.Message("must be a non-negative integer"),
			failure.Context{"value": value})
	}
	f.Value = n
	f.IsSet = true
	return nil
}

func (f *countFlag) Type() string {
	return "count"
}

var _ pflag.Value = &countFlag{}

const (
	outputText = "text"
	outputJSON = "json"
)

// outputFlag selects how results are printed
type outputFlag struct {
	Value string
}

// String implements pflag.Value.
func (f *outputFlag) String() string {
	if f.Value == "" {
		return outputText
	}
	return f.Value
}

func (f *outputFlag) Set(value string) error {
	switch value {
	case outputText, outputJSON:
		f.Value = value
		return nil
	}
	return failure.New(InvalidOutputFormat,
		failure.Message("output must be one of: text, json"),
		failure.Context{"value": value})
}

func (f *outputFlag) Type() string {
	return "format"
}

var _ pflag.Value = &outputFlag{}
