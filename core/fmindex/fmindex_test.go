package fmindex

import (
	"bytes"
	"testing"

	"laus-core/nucleotide"
	"laus-core/pack"
)

func buildRef(t *testing.T, seqs ...string) *pack.PackedReference {
	t.Helper()
	p := pack.New()
	for i, s := range seqs {
		p.AppendContig(string(rune('A'+i)), []byte(s))
	}
	p.Finalize()
	return p
}

func TestBuildRejectsNonPowerOfTwoSAIntv(t *testing.T) {
	ref := buildRef(t, "ACGT")
	if _, err := Build(ref, 3); err == nil {
		t.Fatal("expected an error for a non-power-of-two SA_INTV")
	}
}

func TestBuildOverPackedReferenceFindsForwardAndRC(t *testing.T) {
	ref := buildRef(t, "ACGTACGT")
	f, err := Build(ref, 4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if f.RefLen() != ref.RefLen() {
		t.Fatalf("RefLen = %d, want %d", f.RefLen(), ref.RefLen())
	}

	// "ACGT" occurs in the forward half and its reverse complement "ACGT"
	// (self-complementary under revcomp since ACGT's revcomp is ACGT)
	// occurs in the reverse half too, so it should have at least 2 hits
	// across the concatenated forward+RC text.
	ik := f.GetInterval(nucleotide.EncodeString("ACGT"))
	if ik.Empty() {
		t.Fatal("expected ACGT to be found")
	}
	if ik.Size < 2 {
		t.Fatalf("Size = %d, want at least 2 (forward repeat + its RC image)", ik.Size)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ref := buildRef(t, "AGGAGGCTGCGATTAAGCGTAAGGATCGGA", "TTTTACGTTTTT")
	f, err := Build(ref, 8)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.RefLen() != f.RefLen() {
		t.Fatalf("RefLen mismatch: %d vs %d", got.RefLen(), f.RefLen())
	}
	if got.Primary() != f.Primary() {
		t.Fatalf("Primary mismatch: %d vs %d", got.Primary(), f.Primary())
	}
	if got.L2() != f.L2() {
		t.Fatalf("L2 mismatch: %v vs %v", got.L2(), f.L2())
	}

	pattern := nucleotide.EncodeString("ACGT")
	want := f.GetInterval(pattern)
	gotIk := got.GetInterval(pattern)
	if want != gotIk {
		t.Fatalf("GetInterval after round trip = %+v, want %+v", gotIk, want)
	}
	if gotIk.Size > 0 {
		if f.SaToPos(gotIk.Start) != got.SaToPos(gotIk.Start) {
			t.Fatal("SaToPos disagrees after round trip")
		}
	}
}

// TestSaveLoadPreservesPrimaryRowHandling is a regression test: occPrefix
// reconstruction in Load must exclude the primary row the same way Build
// does, and SaToPos(primary) must resolve to 0 rather than looping, on
// both sides of a round trip.
func TestSaveLoadPreservesPrimaryRowHandling(t *testing.T) {
	ref := buildRef(t, "ACGTACGTACGT")
	f, err := Build(ref, 4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.SaToPos(got.Primary()) != 0 {
		t.Fatalf("SaToPos(primary) after round trip = %d, want 0", got.SaToPos(got.Primary()))
	}

	ik := got.InitInterval(nucleotide.A)
	if ik.Empty() {
		t.Fatal("expected a non-empty interval for A")
	}
	if ext := got.ExtendBackward(ik, nucleotide.A); !ext.Empty() {
		t.Fatalf("ExtendBackward(A, A) after round trip = %+v, want empty", ext)
	}
}

func TestLoadRejectsCorruptMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{1, 2, 3, 4})
	if _, err := Load(&buf); err == nil {
		t.Fatal("expected an error for a corrupt header")
	}
}

func TestLoadRejectsChecksumMismatch(t *testing.T) {
	ref := buildRef(t, "ACGTACGTACGT")
	f, err := Build(ref, 4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xff
	if _, err := Load(bytes.NewReader(corrupted)); err == nil {
		t.Fatal("expected a checksum error for a corrupted trailer")
	}
}
