package engine

import (
	"encoding/json"
	"strconv"
)

// Index is an optional draft pool index. The zero value is unset.
type Index struct {
	i   int
	set bool
}

// NoIndex is the unset index.
var NoIndex = Index{}

// At returns a set index.
func At(i int) Index {
	return Index{i: i, set: true}
}

// Get returns the index and whether it is set.
func (x Index) Get() (int, bool) {
	return x.i, x.set
}

func (x Index) IsSet() bool { return x.set }

// Value returns the index, or -1 when unset.
func (x Index) Value() int {
	if !x.set {
		return -1
	}
	return x.i
}

// Is reports whether x is set to i.
func (x Index) Is(i int) bool {
	return x.set && x.i == i
}

func (x Index) String() string {
	if !x.set {
		return "none"
	}
	return strconv.Itoa(x.i)
}

func (x Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.Value())
}

func (x *Index) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v < 0 {
		*x = NoIndex
		return nil
	}
	*x = At(v)
	return nil
}
