// Package envutil reads typed settings from the environment. Unset, blank or
// malformed variables fall back to the given default.
package envutil

import (
	"math"
	"os"
	"strconv"
	"strings"
)

func lookup[T any](name string, def T, parse func(string) (T, error)) T {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	parsed, err := parse(v)
	if err != nil {
		return def
	}
	return parsed
}

func String(name, def string) string {
	return lookup(name, def, func(s string) (string, error) { return s, nil })
}

func Int(name string, def int) int {
	return lookup(name, def, strconv.Atoi)
}

// Int64 accepts decimal and 0x-prefixed values, as used for seeds.
func Int64(name string, def int64) int64 {
	return lookup(name, def, func(s string) (int64, error) { return strconv.ParseInt(s, 0, 64) })
}

// Float rejects NaN and infinities.
func Float(name string, def float64) float64 {
	return lookup(name, def, func(s string) (float64, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return 0, strconv.ErrRange
		}
		return f, err
	})
}
