package arweave

import (
	"crypto/sha256"
	"encoding/binary"
)

const (
	maxChunkSize = 256 * 1024
	minChunkSize = 32 * 1024
	noteSize     = 32
)

type chunk struct {
	dataHash     []byte
	minByteRange int
	maxByteRange int
}

type merkleNode struct {
	id           []byte
	maxByteRange int
}

// dataRoot computes the Merkle root Arweave uses to commit to transaction data.
func dataRoot(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	chunks := chunkData(data)
	nodes := make([]merkleNode, len(chunks))
	for i, c := range chunks {
		nodes[i] = merkleNode{
			id:           hashAll(hash(c.dataHash), hash(intToNote(c.maxByteRange))),
			maxByteRange: c.maxByteRange,
		}
	}

	for len(nodes) > 1 {
		next := make([]merkleNode, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			if i+1 == len(nodes) {
				next = append(next, nodes[i])
				continue
			}
			left, right := nodes[i], nodes[i+1]
			next = append(next, merkleNode{
				id:           hashAll(hash(left.id), hash(right.id), hash(intToNote(left.maxByteRange))),
				maxByteRange: right.maxByteRange,
			})
		}
		nodes = next
	}
	return nodes[0].id
}

func chunkData(data []byte) []chunk {
	var chunks []chunk
	rest := data
	cursor := 0

	for len(rest) >= maxChunkSize {
		size := maxChunkSize
		// keep the trailing chunk above the minimum by splitting the remainder evenly
		if next := len(rest) - maxChunkSize; next > 0 && next < minChunkSize {
			size = (len(rest) + 1) / 2
		}
		c := rest[:size]
		cursor += len(c)
		chunks = append(chunks, chunk{dataHash: hash(c), minByteRange: cursor - len(c), maxByteRange: cursor})
		rest = rest[size:]
	}

	chunks = append(chunks, chunk{dataHash: hash(rest), minByteRange: cursor, maxByteRange: cursor + len(rest)})
	return chunks
}

func intToNote(n int) []byte {
	note := make([]byte, noteSize)
	binary.BigEndian.PutUint64(note[noteSize-8:], uint64(n))
	return note
}

func hash(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

func hashAll(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
