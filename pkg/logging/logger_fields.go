package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Verification run fields

func RunID(id string) Field {
	return String("run_id", id)
}

// Stage names a step of a run: load, validate, score, report.
func Stage(name string) Field {
	return String("stage", name)
}

// Input names which input a load concerns: source_edges, target_edges, mapping.
func Input(role string) Field {
	return String("input", role)
}

func Path(p string) Field {
	return String("path", p)
}

func Digest(hex string) Field {
	return String("blake2b", hex)
}

func Score(s int64) Field {
	return Int64("score", s)
}

func Count(n int) Field {
	return Int("count", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
