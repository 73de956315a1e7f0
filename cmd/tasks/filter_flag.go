package main

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/arthur-debert/nanotasks/types"
)

// filterValue is a pflag.Value that only accepts known filters
type filterValue struct {
	filter *types.Filter
}

var _ pflag.Value = (*filterValue)(nil)

func newFilterValue(p *types.Filter) *filterValue {
	*p = types.FilterAll
	return &filterValue{filter: p}
}

func (f *filterValue) String() string {
	if f.filter == nil {
		return string(types.FilterAll)
	}
	return f.filter.String()
}

func (f *filterValue) Set(s string) error {
	parsed, err := types.ParseFilter(s)
	if err != nil {
		return err
	}
	*f.filter = parsed
	return nil
}

func (f *filterValue) Type() string {
	return "filter"
}

// addFilterFlag registers --filter on a flag set
func addFilterFlag(flags *pflag.FlagSet, p *types.Filter) {
	names := make([]string, 0, 3)
	for _, f := range types.Filters() {
		names = append(names, string(f))
	}
	flags.Var(newFilterValue(p), "filter", "Which tasks to include ("+strings.Join(names, "|")+")")
}

// resolveFilter returns the filter from flags, environment or config file
func (cli *CLI) resolveFilter() (types.Filter, error) {
	return types.ParseFilter(cli.viperInst.GetString("filter"))
}
