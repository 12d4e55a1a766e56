// Package suite runs a manifest of round-trip fidelity cases.
//
// Each case names an original wire document, the document projected back out
// of the canonical model (or none, when projection failed), the ingestion
// report listing fields lost on the way in, and the expected outcome: whether
// projection should succeed and how many mapping failures reconciliation
// should find.
//
// # Manifest
//
//	version: "1"
//	exceptions: fpml-5-10-exceptions.yaml
//	cases:
//	  - name: EUR-OIS-uti
//	    original: rates/EUR-OIS-uti.xml
//	    projected: projected/EUR-OIS-uti.xml
//	    ingestion: ingestion/EUR-OIS-uti.yaml
//	    mapping_failures: 4
//	  - name: ClearLink-requestClearingFRATRADE001
//	    original: lch/ClearLink-requestClearingFRATRADE001.xml
//	    target: RequestClearing
//	    projection_error: no clearing instructions
//	    pass: false
//
// Relative paths resolve against the manifest's directory. A case without a
// projected document models a projector that rejected the target: with
// pass: false it is skipped, otherwise it is an error.
package suite
