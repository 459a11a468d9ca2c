package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"",
	"param location string = 'westus'\n",
	"var tags = {\n  env: 'dev'\n  owner: 'ops'\n}\n",
	"var xs = [1, 2, 3]\nvar first = xs[0]\n",
	"var s = 'a-${1 + 2}-b'\n",
	"var c = true ? 'yes' : null\n",
	"resource site 'Web/sites@2022-09-01' = {\n  name: 'site'\n  location: 'westus'\n}\noutput host string = site.defaultHostName\n",
	"module net './net.src' = {\n  name: 'net'\n  params: {\n    prefix: '10.0.0.0/16'\n  }\n}\n",
	"/* block */ var x = length('abc') // line\n",
	"var a = b\nvar b = a\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".src" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
