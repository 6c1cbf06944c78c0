package vars

import "log/slog"

// Reference is one occurrence of $name or ${name} in a source string.
//
// Start is the byte offset of the '$'. End is the byte offset of the last
// byte of the reference: the closing '}' if Braces is set, otherwise the last
// byte of Name. Both are inclusive.
type Reference struct {
	Name   string `json:"name"   yaml:"name"`
	Start  int    `json:"start"  yaml:"start"`
	End    int    `json:"end"    yaml:"end"`
	Braces bool   `json:"braces" yaml:"braces"`
}

// String returns the reference as it appears in the source.
func (r Reference) String() string {
	return ResolveVariableInLine(r.Name, nil, r.Braces)
}

// scanState is the position of the scanner relative to a reference.
type scanState int

const (
	stateLiteral      scanState = iota // outside any reference
	stateUnbracedName                  // after "$"
	stateBracedName                    // after "${"
)

// Scan returns the references in source ordered by position.
//
// Malformed references yield an error matching [ErrIllegalReference] and
// one of [ErrEmptyReference], [ErrUnbalancedClose], [ErrMisplacedOpen],
// [ErrMisplacedSigil], [ErrMissingClose] or [ErrUnbalancedOpen].
func Scan(source string) ([]Reference, error) {
	var (
		refs  []Reference
		state = stateLiteral
		start int // offset of '$'
		name  int // offset of the first name byte
	)

	for i := 0; i < len(source); i++ {
		c := source[i]

		switch state {
		case stateLiteral:
			if c != '$' {
				continue
			}

			start = i

			if i+1 == len(source) || Terminator(source[i+1]) {
				return nil, illegalReference(ErrEmptyReference, source, i)
			}

			if source[i+1] == '{' {
				i++
				state = stateBracedName
			} else {
				state = stateUnbracedName
			}

			name = i + 1

		case stateUnbracedName:
			if c == '}' {
				return nil, illegalReference(ErrUnbalancedClose, source, i)
			}

			if Terminator(c) {
				refs = append(refs, Reference{
					Name:  source[name:i],
					Start: start,
					End:   i - 1,
				})
				state = stateLiteral
			}

		case stateBracedName:
			switch {
			case c == '}':
				if i == name {
					return nil, illegalReference(ErrEmptyReference, source, start)
				}

				refs = append(refs, Reference{
					Name:   source[name:i],
					Start:  start,
					End:    i,
					Braces: true,
				})
				state = stateLiteral

			case c == '{':
				return nil, illegalReference(ErrMisplacedOpen, source, i)

			case c == '$':
				return nil, illegalReference(ErrMisplacedSigil, source, i)

			case Terminator(c):
				return nil, illegalReference(ErrMissingClose, source, i)
			}
		}
	}

	switch state {
	case stateUnbracedName:
		refs = append(refs, Reference{
			Name:  source[name:],
			Start: start,
			End:   len(source) - 1,
		})

	case stateBracedName:
		return nil, illegalReference(ErrUnbalancedOpen, source, start)
	}

	return refs, nil
}

func illegalReference(reason *Error, source string, index int) *Error {
	return ErrIllegalReference.Wrap(reason).With(
		slog.Int("index", index),
		slog.String("source", source),
	)
}
