// Package rip contains the collaborators the dispatcher hands work to once
// the destination is known: Batch rips every module named by the inputs,
// and Inspector describes them without writing anything.
//
// Sample decoding itself sits behind the Extractor interface. The default
// ManifestExtractor records each module in a YAML manifest in the
// destination folder, so a complete run can be driven end to end and
// audited before a decoder is plugged in.
package rip
