// Package logging writes structured JSON log lines.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

// SetOutput redirects log lines written by Event. Intended for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Event writes data as a single JSON line. It sets "ts" in the given location and
// derives "level" from "status" when the caller did not provide one.
func Event(loc *time.Location, data map[string]any) {
	if loc == nil {
		loc = time.UTC
	}
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	_, _ = out.Write(append(b, '\n'))
}

// Error writes an error-level event with msg and the error text.
func Error(loc *time.Location, msg string, err error) {
	Event(loc, map[string]any{
		"level": "error",
		"msg":   msg,
		"error": err.Error(),
	})
}
