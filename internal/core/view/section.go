package view

// Section is one independently fetched part of a view.
type Section[T any] struct {
	Data   T      `json:"data"`
	Loaded bool   `json:"loaded"`
	Stale  bool   `json:"stale"`
	Error  string `json:"error,omitempty"`
}

// Fresh wraps a successfully fetched value.
func Fresh[T any](v T) Section[T] {
	return Section[T]{Data: v, Loaded: true}
}

// Failed records err for a section. When prev holds data it is kept and
// flagged stale; otherwise the section reports the error with zero data.
func Failed[T any](prev Section[T], err error) Section[T] {
	if prev.Loaded {
		return Section[T]{Data: prev.Data, Loaded: true, Stale: true, Error: err.Error()}
	}
	return Section[T]{Error: err.Error()}
}

// Resolve picks Fresh or Failed depending on err.
func Resolve[T any](prev Section[T], v T, err error) Section[T] {
	if err != nil {
		return Failed(prev, err)
	}
	return Fresh(v)
}
