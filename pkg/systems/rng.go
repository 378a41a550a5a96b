package systems

import "math/rand"

// RNG 可复现的随机数源
// 相同种子和相同的调用序列产生相同的结果，用于回放与测试
type RNG struct {
	seed  int64
	rng   *rand.Rand
	calls uint64
}

// NewRNG 创建随机数源，种子为 0 时使用 1
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = 1
	}
	return &RNG{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed 返回种子
func (r *RNG) Seed() int64 {
	return r.seed
}

// Calls 返回已消耗的随机数次数
func (r *RNG) Calls() uint64 {
	return r.calls
}

// Float64 返回 [0, 1) 内的随机数
func (r *RNG) Float64() float64 {
	r.calls++
	return r.rng.Float64()
}

// Intn 返回 [0, n) 内的随机整数
func (r *RNG) Intn(n int) int {
	r.calls++
	return r.rng.Intn(n)
}

// Range 返回 [lo, hi) 内的随机数，hi <= lo 时返回 lo
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
