// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payroll

import "github.com/zeebo/blake3"

// domainHash computes a domain-separated 32-byte digest over data, used for
// the receipt-hash computation (§3 Replay log: H("receipt:v1" ‖ r)).
func domainHash(domain string, data []byte) [32]byte {
	h := blake3.New()
	h.Write([]byte(domain))
	h.Write(data)

	var out [32]byte
	digest := h.Digest()
	digest.Read(out[:])
	return out
}
