// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abc

import "fmt"

// TimeSampling describes how a property's sample indexes map to time.
// Only the structure is validated; sample times are reported as
// stored.
type TimeSampling struct {
	// MaxSample is the largest sample count of any property using this
	// sampling, as recorded by the writer.
	MaxSample uint32

	// TimePerCycle is the duration of one cycle of Times.
	TimePerCycle float64

	// Times are the sample times within one cycle.
	Times []float64
}

// identityTimeSampling is the implicit sampling at index 0: one sample
// per unit of time starting at zero.
var identityTimeSampling = TimeSampling{TimePerCycle: 1, Times: []float64{0}}

// parseTimeSamplings decodes the stored samplings. Each entry is a
// uint32 max sample, a float64 time per cycle, a uint32 time count and
// that many float64 times.
func parseTimeSamplings(raw []byte) ([]TimeSampling, error) {
	samplings := []TimeSampling{identityTimeSampling}
	reader := newByteReader(raw, "time samplings")
	for reader.remaining() > 0 {
		var sampling TimeSampling
		var err error
		if sampling.MaxSample, err = reader.uint32(); err != nil {
			return nil, err
		}
		if sampling.TimePerCycle, err = reader.float64(); err != nil {
			return nil, err
		}
		count, err := reader.uint32()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: time sampling %d has no sample times", ErrMalformed, len(samplings))
		}
		if uint64(count) > uint64(reader.remaining())/8 {
			return nil, fmt.Errorf("%w: time sampling %d declares %d times, %d bytes remain",
				ErrMalformed, len(samplings), count, reader.remaining())
		}
		sampling.Times = make([]float64, count)
		for i := range sampling.Times {
			if sampling.Times[i], err = reader.float64(); err != nil {
				return nil, err
			}
		}
		samplings = append(samplings, sampling)
	}
	return samplings, nil
}
