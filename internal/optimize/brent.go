package optimize

import "math"

var goldenRatio = 0.5 * (3 - math.Sqrt(5))

// minimizeBounded finds a local minimum of f on [lo, hi] with Brent's method
// (golden section plus parabolic steps), starting from seed. It stops when the
// bracket is within xtol of the best point or after maxIter evaluations.
func minimizeBounded(f func(float64) float64, lo, hi, seed, xtol float64, maxIter int) (xBest, fBest float64, converged bool) {
	sqrtEps := math.Sqrt(2.2e-16)

	a, b := lo, hi
	x := math.Max(lo, math.Min(hi, seed))
	v, w := x, x
	fx := f(x)
	fv, fw := fx, fx

	var d, e float64
	mid := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(x) + xtol/3
	tol2 := 2 * tol1

	for iter := 0; math.Abs(x-mid) > tol2-0.5*(b-a); iter++ {
		if iter >= maxIter {
			return x, fx, false
		}

		golden := true
		if math.Abs(e) > tol1 {
			golden = false
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = d

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-x) && p < q*(b-x) {
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = tol1 * signOrOne(mid-x)
				}
			} else {
				golden = true
			}
		}
		if golden {
			if x >= mid {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenRatio * e
		}

		u := x + signOrOne(d)*math.Max(math.Abs(d), tol1)
		fu := f(u)

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}

		mid = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(x) + xtol/3
		tol2 = 2 * tol1
	}
	return x, fx, true
}

func signOrOne(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
