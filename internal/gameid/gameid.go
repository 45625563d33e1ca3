// Package gameid generates round identifiers: UUIDv7 values rendered as
// 26-character Crockford base32 strings, so they sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet (lowercase, no i, l, o, u)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id
const Length = 26

// Generator creates round ids from an optional entropy source
type Generator struct {
	entropy io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto/rand via uuid.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new round id using crypto randomness
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new round id
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.entropy != nil {
		id, err = uuid.NewV7FromReader(g.entropy)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate round id: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are
// left-padded with two zero bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(Length)

	// 130 bits: 2 padding bits then the 128 UUID bits, read 5 at a time
	for i := 0; i < Length; i++ {
		var v byte
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Validate checks that id is 26 characters of valid base32 with a first
// character in 0-7
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
