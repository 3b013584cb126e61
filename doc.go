// Package yttext provides a high-level API to download YouTube transcripts.
//
// Features:
//   - Caption track listing with manual/generated distinction
//   - Language preference cascade with English fallbacks
//   - Plain-text output with optional [MM:SS] timestamps
//   - Output files named from the sanitized video title
package yttext
