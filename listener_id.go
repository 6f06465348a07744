package emitter

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const (
	// DefaultIDLength is the number of random characters of a generated listener id.
	DefaultIDLength = 21

	// DefaultIDPrefix is prepended to every listener id by the default generator.
	DefaultIDPrefix = "lst_"

	// idAlphabet has exactly 64 symbols so a random byte masked to 6 bits picks one uniformly.
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	idMask     = len(idAlphabet) - 1
)

type (
	// ListenerID identifies a single registration.
	ListenerID string

	// IDGenerator is the source of listener ids. Ids only need to be unique for the lifetime of
	// one emitter.
	IDGenerator interface {
		NewID() ListenerID
	}

	// AlphabetIDGenerator produces Prefix followed by Length random characters drawn from
	// A-Z, a-z, 0-9, '_' and '-'.
	AlphabetIDGenerator struct {
		Prefix string
		Length int
	}

	// UUIDIDGenerator produces Prefix followed by a random (version 4) UUID.
	UUIDIDGenerator struct {
		Prefix string
	}
)

// GenerateID returns a random string of the given length. A non positive length falls back to
// DefaultIDLength.
func GenerateID(length int) string {
	if length <= 0 {
		length = DefaultIDLength
	}

	buf := make([]byte, length)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(buf)

	for i, b := range buf {
		buf[i] = idAlphabet[int(b)&idMask]
	}

	return string(buf)
}

func NewAlphabetIDGenerator(prefix string, length int) AlphabetIDGenerator {
	return AlphabetIDGenerator{Prefix: prefix, Length: length}
}

func (g AlphabetIDGenerator) NewID() ListenerID {
	return ListenerID(g.Prefix + GenerateID(g.Length))
}

func NewUUIDIDGenerator(prefix string) UUIDIDGenerator {
	return UUIDIDGenerator{Prefix: prefix}
}

func (g UUIDIDGenerator) NewID() ListenerID {
	return ListenerID(g.Prefix + uuid.NewString())
}
