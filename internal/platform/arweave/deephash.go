package arweave

import (
	"crypto/sha512"
	"strconv"
)

// deepHash implements the Arweave deep-hash over nested lists of byte blobs.
// Items must be []byte or []any whose elements are themselves valid items.
func deepHash(item any) []byte {
	switch v := item.(type) {
	case []byte:
		tag := sha384([]byte("blob" + strconv.Itoa(len(v))))
		return sha384(append(tag, sha384(v)...))
	case []any:
		acc := sha384([]byte("list" + strconv.Itoa(len(v))))
		for _, child := range v {
			acc = sha384(append(acc, deepHash(child)...))
		}
		return acc
	default:
		panic("arweave: unsupported deep-hash item")
	}
}

func sha384(b []byte) []byte {
	sum := sha512.Sum384(b)
	return sum[:]
}
