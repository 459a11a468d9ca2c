package compile

import "fmt"

// Context is one version of a program as an editor sees it: the entry
// compilation together with the collection that owns it.
type Context struct {
	Collection *Collection
	Main       *Compilation
}

// NewContext fails when the entry file of coll did not load.
func NewContext(coll *Collection) (*Context, error) {
	main, err := coll.Main()
	if err != nil {
		return nil, fmt.Errorf("main file %s failed to load: %w", coll.MainPath(), err)
	}
	return &Context{Collection: coll, Main: main}, nil
}

// OpenContext builds a collection around an in-memory entry file and
// returns its context.
func OpenContext(entry string, content []byte, opts Options) (*Context, error) {
	coll, err := CreateWithPreloadedMain(entry, content, opts)
	if err != nil {
		return nil, err
	}
	return NewContext(coll)
}
