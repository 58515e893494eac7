package storage

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("exam-qa-study/source/fingerprint")

// Fingerprint возвращает отпечаток исходного текста (HighwayHash-64 в hex).
// Используется как ETag и для сверки экспорта с документом.
func Fingerprint(data []byte) (string, error) {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
