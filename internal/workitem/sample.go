package workitem

import _ "embed"

//go:embed sample.yaml
var sampleData []byte

// Sample returns the built-in demo item set used when no data file is given.
func Sample() *MemorySource {
	items, err := Parse(sampleData)
	if err != nil {
		panic(err)
	}
	s, err := NewMemorySource(items)
	if err != nil {
		panic(err)
	}
	return s
}
