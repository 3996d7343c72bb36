package catalog

// Field lengths from the SEFAZ schemas (TChNFe and TRec)
const (
	TamanhoChave  = 44
	TamanhoRecibo = 15
)

// ValidarChave reports whether chave is exactly 44 ASCII digits
func ValidarChave(chave string) bool {
	return allDigits(chave, TamanhoChave)
}

// ValidarRecibo reports whether recibo matches the receipt number format
// (15 ASCII digits)
func ValidarRecibo(recibo string) bool {
	return allDigits(recibo, TamanhoRecibo)
}

func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
