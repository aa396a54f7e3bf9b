package krypto

import (
	"reflect"
	"testing"
)

func TestIsPrime(t *testing.T) {
	tests := []struct {
		n    uint64
		want bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{9, false},
		{17, true},
		{25, false},
		{3233, false},
		{7919, true},
		{4294967311, true},
	}

	for _, tt := range tests {
		if got := IsPrime(tt.n); got != tt.want {
			t.Errorf("IsPrime(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}

	for n := uint64(4); n < 500; n += 2 {
		if IsPrime(n) {
			t.Errorf("IsPrime(%d) = true for even number", n)
		}
	}
}

func TestGeneratePrimes(t *testing.T) {
	tests := []struct {
		name  string
		start uint64
		count uint64
		want  []uint64
	}{
		{
			name:  "first five",
			start: 1,
			count: 5,
			want:  []uint64{2, 3, 5, 7, 11},
		},
		{
			name:  "start at zero",
			start: 0,
			count: 3,
			want:  []uint64{2, 3, 5},
		},
		{
			name:  "start on a prime",
			start: 13,
			count: 4,
			want:  []uint64{13, 17, 19, 23},
		},
		{
			name:  "start between primes",
			start: 90,
			count: 2,
			want:  []uint64{97, 101},
		},
		{
			name:  "zero count",
			start: 10,
			count: 0,
			want:  []uint64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GeneratePrimes(tt.start, tt.count)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GeneratePrimes(%d, %d) = %v, want %v", tt.start, tt.count, got, tt.want)
			}
		})
	}
}

func TestGeneratePrimesProperties(t *testing.T) {
	for _, start := range []uint64{1, 2, 10, 100, 1000, 65521} {
		for _, count := range []uint64{1, 7, 50} {
			pool := GeneratePrimes(start, count)
			if uint64(len(pool)) != count {
				t.Fatalf("GeneratePrimes(%d, %d) returned %d primes", start, count, len(pool))
			}
			for i, p := range pool {
				if !IsPrime(p) {
					t.Errorf("GeneratePrimes(%d, %d)[%d] = %d is not prime", start, count, i, p)
				}
				if p < start {
					t.Errorf("GeneratePrimes(%d, %d)[%d] = %d is below start", start, count, i, p)
				}
				if i > 0 && pool[i-1] >= p {
					t.Errorf("GeneratePrimes(%d, %d) not strictly increasing at %d", start, count, i)
				}
			}
		}
	}
}
