package mode

import "math"

// maxCount caps accumulated and combined counts.
const maxCount = math.MaxInt32

// countState tracks count prefix accumulation.
type countState struct {
	value  int
	active bool
}

func (c *countState) reset() {
	c.value = 0
	c.active = false
}

// accumulate adds a digit to the count. It returns false for a leading 0,
// which is a motion rather than a count.
func (c *countState) accumulate(digit int) bool {
	if digit < 0 || digit > 9 {
		return false
	}
	if !c.active && digit == 0 {
		return false
	}
	c.active = true
	if c.value > (maxCount-digit)/10 {
		c.value = maxCount
		return true
	}
	c.value = c.value*10 + digit
	return true
}

// get returns the effective count, 1 when none was typed.
func (c *countState) get() int {
	if c.value <= 0 {
		return 1
	}
	return c.value
}

// take returns the count and whether one was typed, then resets.
func (c *countState) take() (int, bool) {
	n, ok := c.get(), c.active
	c.reset()
	return n, ok
}

// combineCounts multiplies two counts with overflow protection.
// Zero or negative counts mean 1, so 2d3w deletes six words.
func combineCounts(a, b int) int {
	if a <= 0 {
		a = 1
	}
	if b <= 0 {
		b = 1
	}
	if a > maxCount/b {
		return maxCount
	}
	return a * b
}
