package datum

import (
	"math"

	"github.com/signadot/avroidx/binary"
	"github.com/signadot/avroidx/debug"
)

// readBlocks runs the block sequence shared by arrays and maps, calling
// items once per block with the block's item count until the zero count
// terminator is read.
//
// A negative count announces a size-prefixed block; the size is read and
// the items are still decoded one by one unless the walker is sized.
func (w *walker) readBlocks(what string, items func(n int64) error) error {
	block := 0
	for {
		count, err := w.d.ReadLong()
		if err != nil {
			return atf(err, "%s block %d count", what, block)
		}
		if count == 0 {
			return nil
		}
		if count < 0 {
			if count == math.MinInt64 {
				return atf(binary.ErrMalformedVarint, "%s block %d count", what, block)
			}
			count = -count
			size, err := w.d.ReadLong()
			if err != nil {
				return atf(err, "%s block %d size", what, block)
			}
			if debug.Skip() {
				debug.Logf("%s block %d: %d items, %d bytes at %d", what, block, count, size, w.d.Position())
			}
			if w.sized {
				if err := w.d.Skip(size); err != nil {
					return atf(err, "%s block %d", what, block)
				}
				block++
				continue
			}
		} else if debug.Skip() {
			debug.Logf("%s block %d: %d items at %d", what, block, count, w.d.Position())
		}
		if err := items(count); err != nil {
			return err
		}
		block++
	}
}
