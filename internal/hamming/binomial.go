package hamming

import "math/big"

// Binomial returns C(n,k) as an exact integer.
// Out of range k (k < 0 or k > n) yields 0.
func Binomial(n, k int) *big.Int {
	if n < 0 || k < 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// nextBinomial turns C(n,k) into C(n,k+1) in place.
func nextBinomial(c *big.Int, n, k int) *big.Int {
	c.Mul(c, big.NewInt(int64(n-k)))
	return c.Quo(c, big.NewInt(int64(k+1)))
}
