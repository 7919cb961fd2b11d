package catalog

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// record is the stored form of every value. Data holds the YAML encoding of
// the value and Checksum the BLAKE3 sum of Data.
type record struct {
	Checksum string `yaml:"blake3"`
	Data     string `yaml:"data"`
}

func encodeRecord(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("(catalog-encode) failed to encode value: %w", err)
	}

	out, err := yaml.Marshal(record{
		Checksum: checksum(data),
		Data:     string(data),
	})
	if err != nil {
		return nil, fmt.Errorf("(catalog-encode) failed to encode record: %w", err)
	}

	return out, nil
}

func decodeRecord(raw []byte, v any) error {
	var rec record

	if err := yaml.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}

	if rec.Checksum != checksum([]byte(rec.Data)) {
		return fmt.Errorf("%w: checksum mismatch", ErrCorruptRecord)
	}

	if err := yaml.Unmarshal([]byte(rec.Data), v); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}

	return nil
}

func checksum(data []byte) string {
	sum := blake3.Sum256(data)

	return hex.EncodeToString(sum[:])
}
