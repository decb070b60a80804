package bspline

// BasisFuncs returns the degree+1 basis functions that are nonzero at t,
// together with the segment they belong to. Value j belongs to control point
// k.ControlIndex(seg, j).
//
// This is algorithm A2.2 from The NURBS Book (Piegl & Tiller, 2nd edition).
func (k *Knots) BasisFuncs(t float64) (seg int, n []float64) {
	t = k.Wrap(t)
	seg = k.Segment(t)
	return seg, basisFuncs(k.flat, seg+k.degree, k.degree, t)
}

// DerivBasisFuncs returns the nonzero basis functions at t and their
// derivatives up to order nd. ders[i][j] is the i-th derivative of the j-th
// nonzero basis function. Derivatives above the degree are zero.
//
// This is algorithm A2.3 from The NURBS Book.
func (k *Knots) DerivBasisFuncs(t float64, nd int) (seg int, ders [][]float64) {
	t = k.Wrap(t)
	seg = k.Segment(t)
	return seg, derivBasisFuncs(k.flat, seg+k.degree, k.degree, nd, t)
}

func basisFuncs(u []float64, span, p int, t float64) []float64 {
	n := make([]float64, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	n[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = t - u[span+1-j]
		right[j] = u[span+j] - t
		var saved float64
		for r := range j {
			tmp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		n[j] = saved
	}
	return n
}

func derivBasisFuncs(u []float64, span, p, nd int, t float64) [][]float64 {
	ndu := grid(p+1, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	ndu[0][0] = 1
	for j := 1; j <= p; j++ {
		left[j] = t - u[span+1-j]
		right[j] = u[span+j] - t
		var saved float64
		for r := range j {
			// lower triangle holds knot differences
			ndu[j][r] = right[r+1] + left[j-r]
			tmp := ndu[r][j-1] / ndu[j][r]
			// upper triangle holds basis functions
			ndu[r][j] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		ndu[j][j] = saved
	}

	ders := grid(nd+1, p+1)
	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}
	top := min(nd, p)
	a := grid(2, p+1)
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1
		for kk := 1; kk <= top; kk++ {
			var d float64
			rk, pk := r-kk, p-kk
			if r >= kk {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			j1 := 1
			if rk < -1 {
				j1 = -rk
			}
			j2 := p - r
			if r-1 <= pk {
				j2 = kk - 1
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][kk] = -a[s1][kk-1] / ndu[pk+1][r]
				d += a[s2][kk] * ndu[r][pk]
			}
			ders[kk][r] = d
			s1, s2 = s2, s1
		}
	}

	f := float64(p)
	for kk := 1; kk <= top; kk++ {
		for j := range ders[kk] {
			ders[kk][j] *= f
		}
		f *= float64(p - kk)
	}
	return ders
}

func grid(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	g := make([][]float64, rows)
	for i := range g {
		g[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return g
}
