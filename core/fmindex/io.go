package fmindex

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"

	"laus-core/alignerr"
	"laus-core/nucleotide"
)

const (
	fmMagic   uint32 = 0x4c41_5346 // "LASF" little-endian
	fmVersion uint32 = 1
)

// Save writes the §6 on-disk format: header (magic, version, primary,
// L2[0..4], SA_INTV, bwtLen, saLen), then the BWT payload packed 2-bit with
// OCC blocks (4 running counts) interleaved every occInterval nucleotides,
// then the sampled SA as a u64 array, followed by a CRC32 trailer.
func (f *FMIndex) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	crc := crc32.NewIEEE()
	mw := io.MultiWriter(bw, crc)

	write := func(v any) error { return binary.Write(mw, binary.LittleEndian, v) }

	for _, v := range []any{fmMagic, fmVersion, f.primary} {
		if err := write(v); err != nil {
			return &alignerr.IoError{Op: "fmindex.Save header", Err: err}
		}
	}
	for _, c := range f.l2 {
		if err := write(c); err != nil {
			return &alignerr.IoError{Op: "fmindex.Save L2", Err: err}
		}
	}
	if err := write(f.saIntv); err != nil {
		return &alignerr.IoError{Op: "fmindex.Save saIntv", Err: err}
	}
	if err := write(f.bwtLen); err != nil {
		return &alignerr.IoError{Op: "fmindex.Save bwtLen", Err: err}
	}
	if err := write(uint64(len(f.saSample))); err != nil {
		return &alignerr.IoError{Op: "fmindex.Save saLen", Err: err}
	}

	m := f.mLen()
	var block [occInterval]nucleotide.Code
	for start := uint64(0); start < m; start += occInterval {
		var running [4]uint64
		for c := 0; c < 4; c++ {
			running[c] = f.occPrefix[c][start]
		}
		for _, v := range running {
			if err := write(v); err != nil {
				return &alignerr.IoError{Op: "fmindex.Save occ block", Err: err}
			}
		}
		end := start + occInterval
		if end > m {
			end = m
		}
		n := end - start
		copy(block[:n], f.bwt[start:end])
		packed := packCodes(block[:n])
		if _, err := mw.Write(packed); err != nil {
			return &alignerr.IoError{Op: "fmindex.Save bwt block", Err: err}
		}
	}

	for _, v := range f.saSample {
		if err := write(v); err != nil {
			return &alignerr.IoError{Op: "fmindex.Save sa sample", Err: err}
		}
	}

	if err := binary.Write(bw, binary.LittleEndian, crc.Sum32()); err != nil {
		return &alignerr.IoError{Op: "fmindex.Save crc", Err: err}
	}
	return bw.Flush()
}

// Load reads the §6 on-disk format and rebuilds the in-memory occurrence
// prefix tables from the interleaved OCC blocks.
func Load(r io.Reader) (*FMIndex, error) {
	br := bufio.NewReader(r)
	crc := crc32.NewIEEE()
	tr := io.TeeReader(br, crc)

	read := func(v any) error { return binary.Read(tr, binary.LittleEndian, v) }

	var magic, version uint32
	if err := read(&magic); err != nil {
		return nil, &alignerr.IoError{Op: "fmindex.Load header", Err: err}
	}
	if magic != fmMagic {
		return nil, &alignerr.CorruptIndex{Reason: "bad magic"}
	}
	if err := read(&version); err != nil {
		return nil, &alignerr.IoError{Op: "fmindex.Load header", Err: err}
	}
	if version != fmVersion {
		return nil, &alignerr.CorruptIndex{Reason: "unsupported version"}
	}

	f := &FMIndex{}
	if err := read(&f.primary); err != nil {
		return nil, &alignerr.IoError{Op: "fmindex.Load primary", Err: err}
	}
	for i := range f.l2 {
		if err := read(&f.l2[i]); err != nil {
			return nil, &alignerr.IoError{Op: "fmindex.Load L2", Err: err}
		}
	}
	if err := read(&f.saIntv); err != nil {
		return nil, &alignerr.IoError{Op: "fmindex.Load saIntv", Err: err}
	}
	if err := read(&f.bwtLen); err != nil {
		return nil, &alignerr.IoError{Op: "fmindex.Load bwtLen", Err: err}
	}
	var saLen uint64
	if err := read(&saLen); err != nil {
		return nil, &alignerr.IoError{Op: "fmindex.Load saLen", Err: err}
	}

	m := f.mLen()
	f.bwt = make([]nucleotide.Code, m)
	for c := 0; c < 4; c++ {
		f.occPrefix[c] = make([]uint64, m+1)
	}

	for start := uint64(0); start < m; start += occInterval {
		var running [4]uint64
		for c := 0; c < 4; c++ {
			if err := read(&running[c]); err != nil {
				return nil, &alignerr.IoError{Op: "fmindex.Load occ block", Err: err}
			}
			f.occPrefix[c][start] = running[c]
		}
		end := start + occInterval
		if end > m {
			end = m
		}
		n := end - start
		packedLen := (n + 3) / 4
		packed := make([]byte, packedLen)
		if _, err := io.ReadFull(tr, packed); err != nil {
			return nil, &alignerr.IoError{Op: "fmindex.Load bwt block", Err: err}
		}
		block := unpackCodes(packed, n)
		copy(f.bwt[start:end], block)
		for i := uint64(0); i < n; i++ {
			for c := 0; c < 4; c++ {
				f.occPrefix[c][start+i+1] = f.occPrefix[c][start+i]
			}
			if start+i != f.primary {
				f.occPrefix[f.bwt[start+i]][start+i+1]++
			}
		}
	}

	f.saSample = make([]uint64, saLen)
	for i := range f.saSample {
		if err := read(&f.saSample[i]); err != nil {
			return nil, &alignerr.IoError{Op: "fmindex.Load sa sample", Err: err}
		}
	}

	var wantCRC uint32
	if err := binary.Read(br, binary.LittleEndian, &wantCRC); err != nil {
		return nil, &alignerr.IoError{Op: "fmindex.Load crc", Err: err}
	}
	if wantCRC != crc.Sum32() {
		return nil, &alignerr.CorruptIndex{Reason: "checksum mismatch"}
	}

	return f, nil
}

func packCodes(codes []nucleotide.Code) []byte {
	out := make([]byte, (len(codes)+3)/4)
	for i, c := range codes {
		out[i/4] |= byte(c&3) << uint((i%4)*2)
	}
	return out
}

func unpackCodes(packed []byte, n uint64) []nucleotide.Code {
	out := make([]nucleotide.Code, n)
	for i := uint64(0); i < n; i++ {
		b := packed[i/4]
		out[i] = nucleotide.Code((b >> uint((i%4)*2)) & 3)
	}
	return out
}
