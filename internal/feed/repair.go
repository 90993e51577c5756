package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrRepair is returned when a payload cannot be turned into valid JSON.
var ErrRepair = errors.New("feed repair failed")

var (
	blockComment = regexp.MustCompile(`/\*[^\x00]*?\*/`)
	bareKey      = regexp.MustCompile(`([a-zA-Z0-9]+):`)
	semicolon    = regexp.MustCompile(`;`)

	callbackPrefix = []byte("callback(")
	callbackSuffix = []byte(")")
)

// Repair rewrites a callback-wrapped object literal into JSON text.
// The passes run in a fixed order: comments, bare keys, semicolons, wrapper.
func Repair(payload []byte) []byte {
	out := blockComment.ReplaceAll(payload, nil)
	out = bareKey.ReplaceAll(out, []byte(`"$1":`))
	out = semicolon.ReplaceAll(out, []byte("\n"))
	out = bytes.TrimSpace(out)
	out = bytes.TrimPrefix(out, callbackPrefix)
	out = bytes.TrimSuffix(out, callbackSuffix)
	return out
}

// Decode repairs payload and unmarshals it into a Document.
func Decode(payload []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(Repair(payload), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepair, err)
	}
	return &doc, nil
}
