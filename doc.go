// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package godfe is a client for the Brazilian SEFAZ DF-e web services
(NF-e, NFC-e, CT-e and MDF-e).

# Overview

go-dfe resolves the endpoint of a fiscal web service for a given document
model, jurisdiction (UF), environment and service, builds the SOAP 1.2
request envelope, and posts it over mutually authenticated HTTPS using the
taxpayer's A1 (PKCS#12) certificate. Responses are returned verbatim and can
be parsed on demand.

# Package Structure

	github.com/sirosfoundation/go-dfe/pkg/catalog     - UFs, environments, models, services
	github.com/sirosfoundation/go-dfe/pkg/webservices - Endpoint table and resolver
	github.com/sirosfoundation/go-dfe/pkg/soap        - Envelope builder and response parser
	github.com/sirosfoundation/go-dfe/pkg/transport   - HTTPS transport with TLS 1.2/1.3
	github.com/sirosfoundation/go-dfe/pkg/compression - GZIP request/response bodies
	github.com/sirosfoundation/go-dfe/pkg/credential  - PKCS#12 client certificates
	github.com/sirosfoundation/go-dfe/pkg/dfe         - Request orchestration

# Quick Start

	id, _ := credential.FromFile("certificado.p12", password)
	store, _ := webservices.Embedded()

	client, err := dfe.New(dfe.Config{Store: store, Identity: id})
	if err != nil {
	    return err
	}
	resp, err := client.StatusServico(ctx, catalog.NFe, catalog.MT, catalog.Homologacao)

# Endpoint Resolution

Endpoints live in an INI (or YAML) table whose sections are named
{modelo}_{uf}_{ambiente}. A section may redirect to another with the Usar
key. National services always go to the AN sections and contingency mode
routes to SVRS or SVC-AN depending on the UF. See the webservices package.

# Command Line

The dfe command under cmd/dfe wraps every query:

	dfe status nfe mt h --cert certificado.p12
	dfe resolve nfe ac p distribuicao
	dfe status-all nfe h --cert certificado.p12

# License

BSD-2-Clause License
*/
package godfe
