// Package digest computes content fingerprints for source and output files.
package digest

import (
	"strconv"

	"github.com/minio/highwayhash"
)

// key is fixed so fingerprints are stable across runs and machines.
var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Sum returns the 64-bit HighwayHash of data.
func Sum(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// String returns the fingerprint of s as 16 lower case hex digits.
func String(s string) (string, error) {
	sum, err := Sum([]byte(s))
	if err != nil {
		return "", err
	}
	return Format(sum), nil
}

// Format renders a fingerprint as 16 lower case hex digits.
func Format(sum uint64) string {
	s := strconv.FormatUint(sum, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}
