package cripta

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestSubstituteWorkedExample(t *testing.T) {
	got, err := Substitute(0x6117BA866527)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, uint32(0x5C82B597)))
}

func TestSubstituteSelectsRowAndColumn(t *testing.T) {
	// 100001 in the first group: row 3, column 0 of S1 is 15.
	got, err := Substitute(0b100001 << 42)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got>>28, uint32(15)))

	// 011110 in the last group: row 0, column 15 of S8 is 7.
	got, err = Substitute(0b011110)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got&0xF, uint32(7)))
}

func TestSubstituteRejectsWideInput(t *testing.T) {
	_, err := Substitute(1 << 48)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestDESRoundFunctionWorkedExample(t *testing.T) {
	rf := &DESRoundFunction{}

	got, err := rf.Apply(0xF0AAF0AA, 0x1B02EFFC7072)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, uint32(0x234AA9BB)))
}

func TestDESRoundFunctionIsPure(t *testing.T) {
	rf := &DESRoundFunction{}

	first, err := rf.Apply(0xDEADBEEF, 0xA5A5A5A5A5A5)
	qt.Assert(t, qt.IsNil(err))
	second, err := rf.Apply(0xDEADBEEF, 0xA5A5A5A5A5A5)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(first, second))
}

func TestDESRoundFunctionRejectsWideKey(t *testing.T) {
	rf := &DESRoundFunction{}

	_, err := rf.Apply(0, 1<<48)
	qt.Assert(t, qt.IsNotNil(err))
}
