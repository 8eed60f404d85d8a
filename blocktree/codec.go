package blocktree

const (
	// IndexBits is the number of index bits a tree may address. Two bits of a
	// 64-bit int are kept free so that spans and block counts never overflow.
	IndexBits = 62
	// MaxExp is the largest supported block-size exponent.
	MaxExp = IndexBits
	// DefaultExp is the block-size exponent used when none is configured (B=64).
	DefaultExp = 6
)

// Codec maps linear indices to per-level digits and knows the shape constants
// of a tree with branching factor B = 2^Exp.
//
// Level 0 is the offset within a leaf block, levels increase towards the root.
// Codec is a small value type and safe to copy.
type Codec struct {
	exp uint8
}

// NewCodec creates a codec for block-size exponent exp. exp must be in
// 1…MaxExp.
func NewCodec(exp uint8) Codec {
	assert(exp >= 1 && exp <= MaxExp, "NewCodec: block-size exponent out of range")
	return Codec{exp: exp}
}

// Exp returns the block-size exponent.
func (c Codec) Exp() uint8 {
	return c.exp
}

// BlockSize returns B = 2^Exp.
func (c Codec) BlockSize() int {
	return 1 << c.exp
}

// BlockMask returns B-1.
func (c Codec) BlockMask() int {
	return c.BlockSize() - 1
}

// Digit selects the child slot for index at a tree level.
//
//	Digit(level, index) = (index >> (Exp·level)) & (B-1)
func (c Codec) Digit(level int, index int) int {
	return (index >> (uint(c.exp) * uint(level))) & c.BlockMask()
}

// Span returns the number of slots addressable by a tree of the given height,
// i.e. B^(height+1).
func (c Codec) Span(height int) int {
	shift := uint(c.exp) * uint(height+1)
	assert(shift <= IndexBits, "Span: height exceeds addressable range")
	return 1 << shift
}

// BlockCount returns the number of blocks needed to hold n slots, ⌈n/B⌉.
func (c Codec) BlockCount(n int) int {
	blocks := n >> c.exp
	if n&c.BlockMask() != 0 {
		blocks++
	}
	return blocks
}

// MaxHeight is the greatest tree height whose span fits into IndexBits.
func (c Codec) MaxHeight() int {
	return IndexBits/int(c.exp) - 1
}

// MaxCapacity is the span of a tree of height MaxHeight.
func (c Codec) MaxCapacity() int {
	return c.Span(c.MaxHeight())
}

// HeightFor returns the minimal height H with capacity ≤ B^(H+1).
func (c Codec) HeightFor(capacity int) int {
	h := 0
	for h < c.MaxHeight() && c.Span(h) < capacity {
		h++
	}
	return h
}

// BlocksFor returns the total number of blocks (leaf and index) of a tree
// holding the given number of leaf blocks.
//
// Leaves are always packed to the left, so level k of the tree holds
// ⌈leaves/B^k⌉ index blocks.
func (c Codec) BlocksFor(leaves int) int {
	if leaves <= 0 {
		return 0
	}
	height := c.HeightFor(leaves << c.exp)
	total, n := leaves, leaves
	for range height {
		n = c.BlockCount(n)
		total += n
	}
	return total
}
