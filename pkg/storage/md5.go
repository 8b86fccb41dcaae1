package storage

import (
	"crypto/md5" //nolint:gosec // S3 single-part ETags are MD5 digests
	"encoding/hex"
)

func md5Hex(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
