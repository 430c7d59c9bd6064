// Package checksum fingerprints generated file content.
//
// Two checksums are offered:
//
//   - Raw checksum: Hash of the exact bytes (what the synchronizer persisted)
//   - Normalized checksum: Hash after unifying line endings and trimming
//     trailing whitespace, used to tell a real content change apart from a
//     file that was only re-saved with different line terminators
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	normalized := calculator.CalculateNormalized(content)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
