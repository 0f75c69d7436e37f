package utils

import (
	"flag"
	"strings"
)

// CommaSeparatedFlagsData holds the parsed values of a command-line flag
// whose single argument is a comma-separated list. It implements
// flag.Value.
type CommaSeparatedFlagsData struct {
	Name   string
	Values []string
	Info   string
}

// CommaSeparatedFlags declares a list-valued flag with the given default
// values. Call InitFlag() on the result before flag.Parse().
func CommaSeparatedFlags(name string, defaults []string, usage string) CommaSeparatedFlagsData {
	return CommaSeparatedFlagsData{
		Name:   name,
		Values: defaults,
		Info:   usage,
	}
}

func (csl *CommaSeparatedFlagsData) Set(arg string) error {
	csl.Values = strings.Split(arg, ",")
	return nil
}

func (csl *CommaSeparatedFlagsData) String() string {
	return strings.Join(csl.Values, ",")
}

// InitFlag registers the flag with the standard flag package.
func (csl *CommaSeparatedFlagsData) InitFlag() {
	flag.Var(csl, csl.Name, csl.Info)
}
