package profile

import (
	"math"
	"math/cmplx"
)

// Sine/cosine integral evaluation constants.
const (
	siciSeriesCut = 2.0    // series below, continued fraction above
	siciEps       = 1e-15  // termination tolerance
	siciFPMin     = 1e-300 // near-underflow floor seeding the Lentz recurrence
	siciMaxIter   = 120
	eulerGamma    = 0.5772156649015329
)

// sici returns (Si(x), Ci(x)) for x > 0:
//
//	Si(x) = Int_0^x sin t / t dt
//	Ci(x) = gamma + ln x + Int_0^x (cos t - 1)/t dt
//
// Small arguments use the Taylor series; larger ones evaluate the
// exponential integral E1(ix) by a modified Lentz continued fraction,
// which converges to machine precision in a few dozen terms.
func sici(x float64) (si, ci float64) {
	if x <= 0 {
		return 0, math.Inf(-1)
	}

	if x <= siciSeriesCut {
		return siciSeries(x)
	}

	// Modified Lentz continued fraction for h = E1(ix); then with the
	// e^{-ix} prefactor, Ci(x) = -Re h and Si(x) = pi/2 + Im h.
	b := complex(1, x)
	c := complex(1/siciFPMin, 0)
	d := 1 / b
	h := d
	for i := 2; i <= siciMaxIter; i++ {
		a := complex(-float64((i-1)*(i-1)), 0)
		b += 2
		d = 1 / (a*d + b)
		c = b + a/c
		del := c * d
		h *= del
		if math.Abs(real(del)-1)+math.Abs(imag(del)) < siciEps {
			break
		}
	}
	h *= cmplx.Exp(complex(0, -x))

	return math.Pi/2 + imag(h), -real(h)
}

// siciSeries sums the Taylor series
//
//	Si(x) = sum (-1)^n x^(2n+1) / ((2n+1)(2n+1)!)
//	Ci(x) = gamma + ln x + sum_{n>=1} (-1)^n x^(2n) / (2n (2n)!)
//
// which converge to machine precision well inside siciMaxIter terms for
// x <= siciSeriesCut.
func siciSeries(x float64) (si, ci float64) {
	x2 := x * x

	pow := x // (-1)^n x^(2n+1)/(2n+1)! starting at n=0
	for n := 0; n <= siciMaxIter; n++ {
		si += pow / (2*float64(n) + 1)
		if math.Abs(pow) < siciEps {
			break
		}
		pow *= -x2 / ((2*float64(n) + 2) * (2*float64(n) + 3))
	}

	ci = eulerGamma + math.Log(x)
	pow = 1 // (-1)^n x^(2n)/(2n)! starting at n=0; the n=0 term is excluded
	for n := 1; n <= siciMaxIter; n++ {
		pow *= -x2 / ((2*float64(n) - 1) * (2 * float64(n)))
		ci += pow / (2 * float64(n))
		if math.Abs(pow) < siciEps {
			break
		}
	}

	return si, ci
}
