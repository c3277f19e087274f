package cli

import "ptu/internal/config"

// Flags holds command-line flags
type Flags struct {
	Processors int
	NameFilter string
	TestPath   string
	Origin     string
	TestCases  bool
	FailFast   bool
	OnlyFailed bool
	OpenFails  bool
	Seed       bool
	Check      bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors: f.Processors,
		NameFilter: f.NameFilter,
		TestPath:   f.TestPath,
		Origin:     f.Origin,
		TestCases:  f.TestCases,
		FailFast:   f.FailFast,
		OnlyFailed: f.OnlyFailed,
		OpenFails:  f.OpenFails,
		Seed:       f.Seed,
		Check:      f.Check,
	}
}
