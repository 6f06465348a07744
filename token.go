package emitter

// Token is an opaque event name. Tokens compare by identity: two tokens created with the same
// description are still different names.
type Token struct {
	description string
}

// NewToken returns a new unique token. The description is only used for display.
func NewToken(description string) *Token {
	return &Token{description: description}
}

func (t *Token) String() string {
	return "Token(" + t.description + ")"
}
