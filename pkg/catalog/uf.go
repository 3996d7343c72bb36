package catalog

import "strings"

// UF identifies one of the 27 state tax authorities
type UF uint8

const (
	RO UF = iota + 1
	AC
	AM
	RR
	PA
	AP
	TO
	MA
	PI
	CE
	RN
	PB
	PE
	AL
	SE
	BA
	MG
	ES
	RJ
	SP
	PR
	SC
	RS
	MS
	MT
	GO
	DF
)

type ufInfo struct {
	sigla string
	cuf   uint8
}

var ufs = [...]ufInfo{
	RO: {"RO", 11},
	AC: {"AC", 12},
	AM: {"AM", 13},
	RR: {"RR", 14},
	PA: {"PA", 15},
	AP: {"AP", 16},
	TO: {"TO", 17},
	MA: {"MA", 21},
	PI: {"PI", 22},
	CE: {"CE", 23},
	RN: {"RN", 24},
	PB: {"PB", 25},
	PE: {"PE", 26},
	AL: {"AL", 27},
	SE: {"SE", 28},
	BA: {"BA", 29},
	MG: {"MG", 31},
	ES: {"ES", 32},
	RJ: {"RJ", 33},
	SP: {"SP", 35},
	PR: {"PR", 41},
	SC: {"SC", 42},
	RS: {"RS", 43},
	MS: {"MS", 50},
	MT: {"MT", 51},
	GO: {"GO", 52},
	DF: {"DF", 53},
}

// UFs returns every jurisdiction in cUF order
func UFs() []UF {
	out := make([]UF, 0, len(ufs)-1)
	for uf := RO; uf <= DF; uf++ {
		out = append(out, uf)
	}
	return out
}

// Valid reports whether u is one of the declared jurisdictions
func (u UF) Valid() bool {
	return u >= RO && u <= DF
}

// String returns the two-letter code used in section names
func (u UF) String() string {
	if !u.Valid() {
		return ""
	}
	return ufs[u].sigla
}

// CUF returns the numeric IBGE code used inside XML bodies
func (u UF) CUF() uint8 {
	if !u.Valid() {
		return 0
	}
	return ufs[u].cuf
}

// ParseUF decodes a two-letter code, ignoring case
func ParseUF(s string) (UF, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for uf := RO; uf <= DF; uf++ {
		if ufs[uf].sigla == s {
			return uf, true
		}
	}
	return 0, false
}
