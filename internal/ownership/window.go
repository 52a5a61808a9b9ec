package ownership

// window is an inclusive block range
type window struct {
	from uint64
	to   uint64
}

func (w window) size() uint64 {
	return w.to - w.from + 1
}

// planWindows splits the last maxBlocks blocks ending at latest into chunks, newest first.
// maxBlocks of 0 means the whole chain.
func planWindows(latest, chunkSize, maxBlocks uint64) []window {
	if chunkSize == 0 {
		return nil
	}

	floor := uint64(0)
	if maxBlocks > 0 && latest+1 > maxBlocks {
		floor = latest + 1 - maxBlocks
	}

	var windows []window
	to := latest
	for {
		from := floor
		if to-floor+1 > chunkSize {
			from = to - chunkSize + 1
		}
		windows = append(windows, window{from: from, to: to})
		if from == floor {
			break
		}
		to = from - 1
	}

	return windows
}
