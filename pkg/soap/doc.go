// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package soap builds and parses the SOAP 1.2 messages exchanged with the SEFAZ
DF-e web services.

# Request Messages

A request is a business fragment wrapped twice: first in the
{tipo}DadosMsg element whose namespace is the operation action, then in a
SOAP 1.2 envelope with a single Body:

	<?xml version="1.0" encoding="UTF-8"?>
	<soap12:Envelope xmlns:xsi="..." xmlns:xsd="..." xmlns:soap12="...">
	  <soap12:Body>
	    <nfeDadosMsg xmlns="http://www.portalfiscal.inf.br/nfe/wsdl/NFeStatusServico4">
	      <consStatServ xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">...</consStatServ>
	    </nfeDadosMsg>
	  </soap12:Body>
	</soap12:Envelope>

(shown indented; the builder emits no whitespace between elements)

The fragment builders are pure string concatenation and produce identical
bytes for identical input:

	dados := soap.ConsStatServ(catalog.MT, catalog.Homologacao, catalog.TipoNFe, catalog.Ver400)
	body, action := soap.Request{
	    Tipo:     catalog.TipoNFe,
	    Operacao: "NFeStatusServico4",
	    Dados:    dados,
	}.Build()

Caller-provided identifiers (access keys, receipt numbers, document numbers)
pass through Escape before interpolation.

# Responses

ParseResponse reads a SOAP 1.1 or 1.2 response with etree, returning the
result element and the cStat/xMotivo status pair. SOAP faults are returned
as *FaultError:

	resp, err := soap.ParseResponse(raw)
	var fault *soap.FaultError
	if errors.As(err, &fault) {
	    log.Printf("fault %s: %s", fault.Code, fault.Reason)
	}
*/
package soap
