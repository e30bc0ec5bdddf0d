// Package testutil defines support code for unit tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/nachofregeiro/jsonformatter/ast"
)

// keyAlphabet includes characters that require escaping, and multi-byte
// characters that order differently by bytes than by UTF-16 code units.
var keyAlphabet = []rune("abcxyzABC019 _-\"\\/\n\t\x01éß☃\U0001F600")

// RandomValue returns a pseudo-random JSON value generated from rng, nested at
// most depth levels. Objects never have duplicate keys, so the value
// satisfies the round-trip law for parsing and rendering.
func RandomValue(rng *rand.Rand, depth int) ast.Value {
	n := 6
	if depth <= 0 {
		n = 4 // scalars only
	}
	switch rng.IntN(n) {
	case 0:
		return ast.Null{}
	case 1:
		return ast.Bool(rng.IntN(2) == 1)
	case 2:
		return RandomNumber(rng)
	case 3:
		return ast.String(RandomString(rng, 12))
	case 4:
		out := make(ast.Array, rng.IntN(5))
		for i := range out {
			out[i] = RandomValue(rng, depth-1)
		}
		return out
	default:
		seen := make(map[string]bool)
		out := ast.Object{}
		for range rng.IntN(5) {
			key := RandomString(rng, 6)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, ast.Field(key, RandomValue(rng, depth-1)))
		}
		return out
	}
}

// RandomNumber returns a pseudo-random finite number, drawn from small
// integers, large integers near the exactly-representable limit, fractions,
// and extreme magnitudes.
func RandomNumber(rng *rand.Rand) ast.Number {
	switch rng.IntN(4) {
	case 0:
		return ast.Number(rng.IntN(2001) - 1000)
	case 1:
		return ast.Number(float64(rng.Int64N(1<<53)) * sign(rng))
	case 2:
		return ast.Number(rng.NormFloat64())
	default:
		exp := rng.IntN(600) - 300
		return ast.Number(rng.Float64() * math.Pow10(exp) * sign(rng))
	}
}

// RandomString returns a pseudo-random string of at most n runes.
func RandomString(rng *rand.Rand, n int) string {
	var sb strings.Builder
	for range rng.IntN(n + 1) {
		sb.WriteRune(keyAlphabet[rng.IntN(len(keyAlphabet))])
	}
	return sb.String()
}

func sign(rng *rand.Rand) float64 {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}
