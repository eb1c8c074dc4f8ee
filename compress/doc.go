// Package compress provides compression codecs for location stream snapshot
// payloads.
//
// Key arrays concatenated into a snapshot payload compress well: coordinate
// arrays are smooth, masks are mostly zeros. Compression is applied to the
// whole payload block after the index is written, so the choice of algorithm
// never changes the snapshot layout, only the payload bytes.
//
// Supported algorithms:
//   - None: passthrough (format.CompressionNone)
//   - Zstd: best ratio, moderate speed (format.CompressionZstd)
//   - S2: balanced ratio and speed (format.CompressionS2)
//   - LZ4: fastest decompression (format.CompressionLZ4)
//
// All codecs are stateless values and safe for concurrent use.
package compress
