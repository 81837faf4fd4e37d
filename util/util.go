package util

import (
	"golang.org/x/exp/constraints"
)

// CeilDiv returns ceil(num / den) for non-negative num and positive den.
func CeilDiv[A constraints.Integer](num A, den A) A {
	if num <= 0 {
		return 0
	}
	return (num + den - 1) / den
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp[A constraints.Ordered](v, lo, hi A) A {
	return Max(lo, Min(v, hi))
}
