package renderer

// RowBlock is a contiguous range of framebuffer rows [Start, End)
type RowBlock struct {
	Start int
	End   int
}

// Rows returns the block height
func (b RowBlock) Rows() int {
	return b.End - b.Start
}

// RowBlocks splits height rows into one contiguous block per worker. The first
// height%workers blocks get one extra row. Never returns empty blocks.
func RowBlocks(height, workers int) []RowBlock {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > height {
		workers = height
	}

	blocks := make([]RowBlock, workers)
	base, extra := height/workers, height%workers
	start := 0
	for i := range blocks {
		rows := base
		if i < extra {
			rows++
		}
		blocks[i] = RowBlock{Start: start, End: start + rows}
		start += rows
	}
	return blocks
}
