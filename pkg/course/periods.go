package course

import (
	"fmt"
	"time"
)

// Evening slot numbers carry an extra trailing digit in the service's base-16
// encoding, so two evening slots one hour apart differ by 0x10 instead of 1.
const eveningThreshold = 0x100

// contiguous reports whether cur directly extends prev. A room change always
// breaks a run regardless of period-number distance.
func contiguous(prev, cur rawBlock) bool {
	if prev.room != cur.room {
		return false
	}

	diff := prev.periodNumber - cur.periodNumber
	if diff < 0 {
		diff = -diff
	}

	if prev.periodNumber > eveningThreshold {
		return diff == 0x10
	}
	return diff == 1
}

// mergePeriods folds fixed one-hour raw blocks into contiguous meeting
// periods. Blocks are scanned in document order and a new period starts
// whenever a block is not contiguous with the one before it. Room, day and
// parity come from the first block of each run; the end time is the start
// time plus one hour per block in the run.
func mergePeriods(blocks []rawBlock) ([]Period, error) {
	if len(blocks) == 0 {
		return nil, nil
	}

	var runs [][]rawBlock
	run := []rawBlock{blocks[0]}
	for _, block := range blocks[1:] {
		if contiguous(run[len(run)-1], block) {
			run = append(run, block)
		} else {
			runs = append(runs, run)
			run = []rawBlock{block}
		}
	}
	runs = append(runs, run)

	periods := make([]Period, 0, len(runs))
	for _, run := range runs {
		first := run[0]
		startsAt, err := time.Parse("15H04", first.startTime)
		if err != nil {
			return nil, fmt.Errorf("invalid period start time %q: %w", first.startTime, err)
		}

		periods = append(periods, Period{
			Room:     first.room,
			Day:      first.day,
			Parity:   parseParity(first.parity),
			StartsAt: startsAt,
			EndsAt:   startsAt.Add(time.Duration(len(run)) * time.Hour),
		})
	}

	return periods, nil
}

// parseParity maps the service's French parity labels. Anything unrecognized
// falls back to weekly.
func parseParity(label string) Parity {
	switch label {
	case "jours impairs":
		return OddDays
	case "jours pairs":
		return EvenDays
	default:
		return Weekly
	}
}
