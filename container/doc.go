// Package container reads and writes object container files.
//
// Format: [magic "Obj\x01"][metadata map<bytes>][sync: 16 bytes] followed by
// blocks of [count: long][size: long][data: size bytes][sync: 16 bytes].
//
// The metadata carries the writer schema under "avro.schema" and the block
// codec under "avro.codec" (null, deflate, snappy or zstandard). Each
// block's data is the concatenation of count encoded values after
// decompression.
package container
