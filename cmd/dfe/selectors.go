package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirosfoundation/go-dfe/pkg/catalog"
)

var timeNow = time.Now

type selectors struct {
	modelo   catalog.Modelo
	uf       catalog.UF
	ambiente catalog.Ambiente
}

func parseSelectors(modelo, uf, ambiente string) (selectors, error) {
	var s selectors
	var ok bool

	if s.modelo, ok = catalog.ParseModelo(modelo); !ok {
		return s, fmt.Errorf("unknown modelo %q (nfe, nfce)", modelo)
	}
	if s.uf, ok = catalog.ParseUF(uf); !ok {
		return s, fmt.Errorf("unknown uf %q", uf)
	}
	if s.ambiente, ok = catalog.ParseAmbiente(ambiente); !ok {
		return s, fmt.Errorf("unknown ambiente %q (p, h)", ambiente)
	}
	return s, nil
}

func parseDocumento(kind, valor string) (catalog.Documento, error) {
	switch strings.ToLower(kind) {
	case "cpf":
		return catalog.NewCPF(valor), nil
	case "cnpj":
		return catalog.NewCNPJ(valor), nil
	case "ie":
		return catalog.NewIE(valor), nil
	}
	return catalog.Documento{}, fmt.Errorf("unknown document kind %q (cpf, cnpj, ie)", kind)
}
