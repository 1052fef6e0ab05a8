package quiz

import "math/rand/v2"

// Shuffle permutes s in place using the Fisher-Yates algorithm, so every
// permutation is equally likely for a uniform source
func Shuffle[T any](r *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// sample returns up to n elements of s chosen uniformly without replacement.
// s itself is left untouched.
func sample[T any](r *rand.Rand, s []T, n int) []T {
	out := make([]T, len(s))
	copy(out, s)
	Shuffle(r, out)

	if n < len(out) {
		out = out[:n]
	}
	return out
}
