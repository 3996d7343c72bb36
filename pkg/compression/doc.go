// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package compression provides gzip encoding for SOAP request and response
bodies.

The transport advertises Accept-Encoding: gzip and decodes compressed
responses with a Compressor. Decompression is bounded so that a hostile or
broken server cannot exhaust memory:

	compressor := compression.NewCompressor(compression.WithMaxSize(8 << 20))
	body, err := compressor.Decompress(raw)
	if errors.Is(err, compression.ErrTooLarge) {
	    // response exceeded 8 MiB once inflated
	}

Request bodies can be compressed too, for endpoints that accept
Content-Encoding: gzip:

	compressed, err := compressor.Compress(envelope)

# References

  - GZIP RFC 1952: https://datatracker.ietf.org/doc/html/rfc1952
*/
package compression
