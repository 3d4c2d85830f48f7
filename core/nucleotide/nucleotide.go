// Package nucleotide defines the 5-symbol alphabet shared by every other
// laus-core package: {A,C,G,T,N}, encoded as the small integer codes 0..4.
package nucleotide

// Code is a 2-bit (plus ambiguity) nucleotide code: A=0, C=1, G=2, T=3, N=4.
type Code uint8

const (
	A Code = 0
	C Code = 1
	G Code = 2
	T Code = 3
	N Code = 4
)

// NumBases is the count of unambiguous bases (A,C,G,T); N is not packable
// into 2 bits and must never appear in a PackedReference payload.
const NumBases = 4

var byteToCode = [256]Code{}
var codeToByte = [5]byte{'A', 'C', 'G', 'T', 'N'}

func init() {
	for i := range byteToCode {
		byteToCode[i] = N
	}
	byteToCode['A'], byteToCode['a'] = A, A
	byteToCode['C'], byteToCode['c'] = C, C
	byteToCode['G'], byteToCode['g'] = G, G
	byteToCode['T'], byteToCode['t'] = T, T
	byteToCode['N'], byteToCode['n'] = N, N
}

// Parse converts an ASCII base to its Code. ok is false for any byte outside
// {A,C,G,T,N} (case-insensitive); such input is treated as N by callers that
// ignore ok, since every ambiguity code collapses to N in this alphabet.
func Parse(b byte) (code Code, ok bool) {
	c := byteToCode[b]
	return c, c != N || b == 'N' || b == 'n'
}

// MustParse is Parse without the ok flag, for call sites that already
// validated the alphabet (e.g. decoding a PackedReference payload).
func MustParse(b byte) Code { return byteToCode[b] }

// Byte renders a Code back to its ASCII base.
func (c Code) Byte() byte {
	if int(c) >= len(codeToByte) {
		return 'N'
	}
	return codeToByte[c]
}

func (c Code) String() string { return string(c.Byte()) }

// Complement returns the Watson-Crick complement: XOR with 3 for A/C/G/T,
// N maps to itself.
func Complement(c Code) Code {
	if c == N {
		return N
	}
	return c ^ 3
}

// EncodeString converts an ASCII sequence into Codes.
func EncodeString(s string) []Code {
	out := make([]Code, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = MustParse(s[i])
	}
	return out
}

// DecodeString renders Codes back to an ASCII sequence.
func DecodeString(codes []Code) string {
	buf := make([]byte, len(codes))
	for i, c := range codes {
		buf[i] = c.Byte()
	}
	return string(buf)
}

// ReverseComplement returns the reverse complement of a Code slice.
func ReverseComplement(codes []Code) []Code {
	n := len(codes)
	out := make([]Code, n)
	for i, c := range codes {
		out[n-1-i] = Complement(c)
	}
	return out
}
