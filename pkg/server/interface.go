/*
Package server implements a msgpack IPC loop that drives a word-frequency dictionary.

Clients write msgpack-encoded requests to the server's stdin and read one
msgpack response per request from its stdout. Requests are handled in order,
one at a time, with timing info included in every response.

	{"id": "r1", "action": "add", "w": "chat"}
	{"id": "r1", "status": "ok", "n": 1, "t": 4}

	{"id": "r2", "action": "top", "k": 2}
	{"id": "r2", "status": "ok", "p": [{"w": "chat", "c": 3}, {"w": "chien", "c": 2}], "n": 2, "t": 11}

Supported actions: add, increment, count, contains, remove, top, stats and
health. Failures come back with status "error" and a message in "e"; the
loop keeps running until stdin is closed.
*/
package server

// Action names accepted in Request.Action.
const (
	ActionAdd       = "add"
	ActionIncrement = "increment"
	ActionCount     = "count"
	ActionContains  = "contains"
	ActionRemove    = "remove"
	ActionTop       = "top"
	ActionStats     = "stats"
	ActionHealth    = "health"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is a single dictionary operation.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Word   string `msgpack:"w,omitempty"`
	K      int    `msgpack:"k,omitempty"`
}

// WordCount is one entry of a top response.
type WordCount struct {
	Word  string `msgpack:"w"`
	Count int    `msgpack:"c"`
}

// Response answers one Request.
type Response struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Error  string         `msgpack:"e,omitempty"`
	N      int            `msgpack:"n"`
	OK     bool           `msgpack:"ok,omitempty"`
	Pairs  []WordCount    `msgpack:"p,omitempty"`
	Stats  map[string]int `msgpack:"s,omitempty"`
	// TimeTaken is in microseconds.
	TimeTaken int64 `msgpack:"t"`
}
