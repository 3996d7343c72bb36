// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package dfe is the client for the SEFAZ DF-e web services.

A Client turns one business operation into exactly one SOAP call:

 1. validate the caller's input (access key, receipt, document)
 2. map the operation to its catalog service and wire operation
 3. resolve the endpoint URL from the webservices table
 4. build the SOAP 1.2 envelope and action
 5. dispatch through the Transport

Steps 1 to 4 never touch the network, so malformed input and unsupported
combinations fail fast.

# Usage

	store, _ := webservices.Embedded()
	id, _ := credential.FromFile("certificado.pfx", password)

	client, err := dfe.New(dfe.Config{
	    Store:    store,
	    Identity: id,
	})
	if err != nil {
	    return err
	}

	resp, err := client.StatusServico(ctx, catalog.NFe, catalog.MT, catalog.Homologacao)
	if err != nil {
	    return err
	}
	parsed, err := resp.Parse()
	fmt.Println(parsed.CStat, parsed.XMotivo) // 107 Servico em Operacao

# Errors

Input errors (ErrChaveInvalida, ErrReciboInvalido, ErrDocumentoInvalido),
catalog errors (ErrOperacaoInexistente) and resolution errors from package
webservices are returned before dispatch. Every transport failure is wrapped
with ErrTransport and keeps the underlying *transport.Error:

	if errors.Is(err, dfe.ErrTransport) {
	    log.Printf("category %s", transport.GetCategory(err))
	}

# Observability

Each call logs at Debug level with a request_id attribute, opens a client
span on the "github.com/sirosfoundation/go-dfe/pkg/dfe" tracer and reports
its outcome to the optional Metrics recorder.
*/
package dfe
