package pack

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"

	"laus-core/alignerr"
	"laus-core/nucleotide"
)

// magic identifies a laus PackedReference file on disk (§6). version allows
// the on-disk layout to evolve without claiming compatibility with any
// existing binary index format (spec.md §1 Non-goals).
const (
	refMagic   uint32 = 0x4c41_5350 // "LASP" little-endian
	refVersion uint32 = 1
)

// Save writes the §6 on-disk format: header (magic, version, L_fwd,
// contigCount), per-contig (offset, length, name), then the 2-bit forward
// payload, followed by a CRC32 trailer over everything preceding it. The
// reverse-complement half is never persisted (§6); Load reconstructs it.
func (p *PackedReference) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	crc := crc32.NewIEEE()
	mw := io.MultiWriter(bw, crc)

	if err := binary.Write(mw, binary.LittleEndian, refMagic); err != nil {
		return &alignerr.IoError{Op: "pack.Save header", Err: err}
	}
	if err := binary.Write(mw, binary.LittleEndian, refVersion); err != nil {
		return &alignerr.IoError{Op: "pack.Save header", Err: err}
	}
	if err := binary.Write(mw, binary.LittleEndian, p.lFwd); err != nil {
		return &alignerr.IoError{Op: "pack.Save header", Err: err}
	}
	if err := binary.Write(mw, binary.LittleEndian, uint64(len(p.contigs))); err != nil {
		return &alignerr.IoError{Op: "pack.Save header", Err: err}
	}
	for _, c := range p.contigs {
		if err := binary.Write(mw, binary.LittleEndian, c.Start); err != nil {
			return &alignerr.IoError{Op: "pack.Save contig", Err: err}
		}
		if err := binary.Write(mw, binary.LittleEndian, c.Length); err != nil {
			return &alignerr.IoError{Op: "pack.Save contig", Err: err}
		}
		nameBytes := []byte(c.Name)
		if err := binary.Write(mw, binary.LittleEndian, uint32(len(nameBytes))); err != nil {
			return &alignerr.IoError{Op: "pack.Save contig name len", Err: err}
		}
		if _, err := mw.Write(nameBytes); err != nil {
			return &alignerr.IoError{Op: "pack.Save contig name", Err: err}
		}
	}

	payload := packForwardPayload(p.fwd)
	if _, err := mw.Write(payload); err != nil {
		return &alignerr.IoError{Op: "pack.Save payload", Err: err}
	}

	if err := binary.Write(bw, binary.LittleEndian, crc.Sum32()); err != nil {
		return &alignerr.IoError{Op: "pack.Save crc", Err: err}
	}
	return bw.Flush()
}

// Load reads the §6 on-disk format and reconstructs the reverse-complement
// half via Finalize.
func Load(r io.Reader) (*PackedReference, error) {
	br := bufio.NewReader(r)
	crc := crc32.NewIEEE()
	tr := io.TeeReader(br, crc)

	var magic, version uint32
	if err := binary.Read(tr, binary.LittleEndian, &magic); err != nil {
		return nil, &alignerr.IoError{Op: "pack.Load header", Err: err}
	}
	if magic != refMagic {
		return nil, &alignerr.CorruptIndex{Reason: "bad magic"}
	}
	if err := binary.Read(tr, binary.LittleEndian, &version); err != nil {
		return nil, &alignerr.IoError{Op: "pack.Load header", Err: err}
	}
	if version != refVersion {
		return nil, &alignerr.CorruptIndex{Reason: "unsupported version"}
	}

	var lFwd, contigCount uint64
	if err := binary.Read(tr, binary.LittleEndian, &lFwd); err != nil {
		return nil, &alignerr.IoError{Op: "pack.Load header", Err: err}
	}
	if err := binary.Read(tr, binary.LittleEndian, &contigCount); err != nil {
		return nil, &alignerr.IoError{Op: "pack.Load header", Err: err}
	}

	p := &PackedReference{}
	p.contigs = make([]ContigInfo, contigCount)
	for i := range p.contigs {
		var c ContigInfo
		if err := binary.Read(tr, binary.LittleEndian, &c.Start); err != nil {
			return nil, &alignerr.IoError{Op: "pack.Load contig", Err: err}
		}
		if err := binary.Read(tr, binary.LittleEndian, &c.Length); err != nil {
			return nil, &alignerr.IoError{Op: "pack.Load contig", Err: err}
		}
		var nameLen uint32
		if err := binary.Read(tr, binary.LittleEndian, &nameLen); err != nil {
			return nil, &alignerr.IoError{Op: "pack.Load contig name len", Err: err}
		}
		nameBuf := make([]byte, nameLen)
		if _, err := io.ReadFull(tr, nameBuf); err != nil {
			return nil, &alignerr.IoError{Op: "pack.Load contig name", Err: err}
		}
		c.Name = string(nameBuf)
		p.contigs[i] = c
	}

	payloadLen := (lFwd + 3) / 4
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(tr, payload); err != nil {
		return nil, &alignerr.IoError{Op: "pack.Load payload", Err: err}
	}
	p.fwd = unpackForwardPayload(payload, lFwd)
	p.lFwd = lFwd

	var wantCRC uint32
	if err := binary.Read(br, binary.LittleEndian, &wantCRC); err != nil {
		return nil, &alignerr.IoError{Op: "pack.Load crc", Err: err}
	}
	if wantCRC != crc.Sum32() {
		return nil, &alignerr.CorruptIndex{Reason: "checksum mismatch"}
	}

	p.Finalize()
	return p, nil
}

func packForwardPayload(fwd []nucleotide.Code) []byte {
	out := make([]byte, (len(fwd)+3)/4)
	for i, c := range fwd {
		out[i/4] |= byte(c&3) << uint((i%4)*2)
	}
	return out
}

func unpackForwardPayload(payload []byte, lFwd uint64) []nucleotide.Code {
	out := make([]nucleotide.Code, lFwd)
	for i := range out {
		b := payload[i/4]
		out[i] = nucleotide.Code((b >> uint((i%4)*2)) & 3)
	}
	return out
}
