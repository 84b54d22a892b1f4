package verify

import (
	"cmp"
	"fmt"
	"slices"
)

// CheckCorrespondence asserts that the records delivered to the consumer for
// the window starting at fetchOffset match, positionally and content-wise,
// the records resident in the second tier.
//
// The stored slice is cloned and sorted by ascending offset before use; the
// caller's slice is never mutated and the underlying snapshot gives no
// ordering guarantee. expectedFromTier must match the tier's availability at
// or after fetchOffset exactly, in both directions.
func CheckCorrespondence(tp TopicPartition, stored []StoredRecord, consumed []ConsumedRecord, fetchOffset int64, expectedFromTier int, codec Codec) Outcome {
	records := slices.Clone(stored)
	slices.SortFunc(records, func(a, b StoredRecord) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	first := slices.IndexFunc(records, func(r StoredRecord) bool {
		return r.Offset >= fetchOffset
	})
	if first < 0 {
		if expectedFromTier > 0 {
			return Outcome{
				Check:     CorrespondenceCheck,
				Violation: ViolationTierContentMissing,
				Partition: tp,
				Expected:  fmt.Sprintf("%d records at offset >= %d", expectedFromTier, fetchOffset),
				Observed:  "none",
				Detail:    fmt.Sprintf("no record with offset >= %d found in tier storage", fetchOffset),
			}
		}
		// Zero expected, zero available: vacuously consistent.
		return Outcome{Check: CorrespondenceCheck, Passed: true, Partition: tp}
	}

	available := len(records) - first
	if expectedFromTier > available {
		return Outcome{
			Check:     CorrespondenceCheck,
			Violation: ViolationTooFewInTier,
			Partition: tp,
			Expected:  fmt.Sprintf("%d", expectedFromTier),
			Observed:  fmt.Sprintf("%d", available),
			Detail:    fmt.Sprintf("not enough records in tier storage from offset %d", fetchOffset),
		}
	}
	if expectedFromTier < available {
		return Outcome{
			Check:     CorrespondenceCheck,
			Violation: ViolationTooManyInTier,
			Partition: tp,
			Expected:  fmt.Sprintf("%d", expectedFromTier),
			Observed:  fmt.Sprintf("%d", available),
			Detail:    fmt.Sprintf("too many records in tier storage from offset %d", fetchOffset),
		}
	}

	if len(consumed) < expectedFromTier {
		return Outcome{
			Check:     CorrespondenceCheck,
			Violation: ViolationContentMismatch,
			Partition: tp,
			Expected:  fmt.Sprintf("%d consumed records", expectedFromTier),
			Observed:  fmt.Sprintf("%d consumed records", len(consumed)),
			Detail:    "consumer delivered fewer records than the tier window requires",
		}
	}

	tierWindow := records[first : first+expectedFromTier]
	consumedWindow := consumed[:expectedFromTier]
	for i := range tierWindow {
		if out, ok := comparePosition(tp, i, tierWindow[i], consumedWindow[i], codec); !ok {
			return out
		}
	}
	return Outcome{Check: CorrespondenceCheck, Passed: true, Partition: tp}
}

// comparePosition decodes and compares the key and value at one window
// position. The total correspondence requirement fails on the first
// divergence.
func comparePosition(tp TopicPartition, i int, tier StoredRecord, consumed ConsumedRecord, codec Codec) (Outcome, bool) {
	mismatch := func(field, want, got string) Outcome {
		return Outcome{
			Check:     CorrespondenceCheck,
			Violation: ViolationContentMismatch,
			Partition: tp,
			Expected:  want,
			Observed:  got,
			Detail: fmt.Sprintf("%s divergence at position %d (tier offset %d, consumed offset %d)",
				field, i, tier.Offset, consumed.Offset),
		}
	}

	tierKey, err := codec.Decode(tier.Key)
	if err != nil {
		return mismatch("key", "decodable key", fmt.Sprintf("decode error: %v", err)), false
	}
	consumedKey, err := codec.Decode(consumed.Key)
	if err != nil {
		return mismatch("key", tierKey, fmt.Sprintf("decode error: %v", err)), false
	}
	if tierKey != consumedKey {
		return mismatch("key", tierKey, consumedKey), false
	}

	tierValue, err := codec.Decode(tier.Value)
	if err != nil {
		return mismatch("value", "decodable value", fmt.Sprintf("decode error: %v", err)), false
	}
	consumedValue, err := codec.Decode(consumed.Value)
	if err != nil {
		return mismatch("value", tierValue, fmt.Sprintf("decode error: %v", err)), false
	}
	if tierValue != consumedValue {
		return mismatch("value", tierValue, consumedValue), false
	}

	return Outcome{}, true
}
