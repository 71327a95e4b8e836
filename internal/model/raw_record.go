package model

// RawRecord is one decoded Glances "all" document. Numbers are kept as
// json.Number so the detail endpoint can pass them through untouched.
type RawRecord = map[string]any
