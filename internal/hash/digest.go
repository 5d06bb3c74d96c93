// Package hash computes content digests of encoded records.
//
// Digests are not stored in the record; tooling prints them to compare the
// output of independent implementations byte for byte.
package hash

import "github.com/cespare/xxhash/v2"

// Digest computes the xxHash64 of data.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DigestParts computes the xxHash64 of the concatenation of parts without
// materializing it, so a header and a payload held in separate regions
// digest the same as the contiguous record.
func DigestParts(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
