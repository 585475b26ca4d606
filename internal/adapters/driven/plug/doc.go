// Package plug implements the AuthAPI and QueryAPI ports against the Plug
// HTTP API (DER-PE MadrixApi). Each operation is a single round-trip POST;
// there are no retries and no pagination beyond what the remote returns in
// one response.
package plug
