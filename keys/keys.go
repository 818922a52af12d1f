// Package keys defines the symbolic keyboard keys understood by WebDriver
// remote ends, and a small combinator API for composing them with literal
// text into a single input sequence.
//
// Each symbolic key maps to a fixed Unicode private-use-area code point in
// the range U+E000-U+E03D, as mandated by the WebDriver specification.
// Remote ends interpret these code points as non-printable keys when they
// appear in an element's send-keys payload or in a key action source.
package keys

// Key is a symbolic keyboard key. Its value is the private-use-area code
// point that represents the key on the wire.
type Key rune

// Symbolic key code points, per the WebDriver keyboard actions table.
const (
	Null      Key = ''
	Cancel    Key = ''
	Help      Key = ''
	Backspace Key = ''
	Tab       Key = ''
	Clear     Key = ''
	Return    Key = ''
	Enter     Key = ''
	Shift     Key = ''
	Control   Key = ''
	Alt       Key = ''
	Pause     Key = ''
	Escape    Key = ''
	Space     Key = ''
	PageUp    Key = ''
	PageDown  Key = ''
	End       Key = ''
	Home      Key = ''
	Left      Key = ''
	Up        Key = ''
	Right     Key = ''
	Down      Key = ''
	Insert    Key = ''
	Delete    Key = ''
	Semicolon Key = ''
	Equals    Key = ''
	NumPad0   Key = ''
	NumPad1   Key = ''
	NumPad2   Key = ''
	NumPad3   Key = ''
	NumPad4   Key = ''
	NumPad5   Key = ''
	NumPad6   Key = ''
	NumPad7   Key = ''
	NumPad8   Key = ''
	NumPad9   Key = ''
	Multiply  Key = ''
	Add       Key = ''
	Separator Key = ''
	Subtract  Key = ''
	Decimal   Key = ''
	Divide    Key = ''
	F1        Key = ''
	F2        Key = ''
	F3        Key = ''
	F4        Key = ''
	F5        Key = ''
	F6        Key = ''
	F7        Key = ''
	F8        Key = ''
	F9        Key = ''
	F10       Key = ''
	F11       Key = ''
	F12       Key = ''
	Meta      Key = ''

	// Command is the macOS name for the meta key. The protocol assigns it
	// the same code point as Meta, so the two compare and transmit
	// identically.
	Command Key = Meta
)

// Rune returns the key's code point.
func (k Key) Rune() rune { return rune(k) }

// String returns the key as a one-code-point string.
func (k Key) String() string { return string(rune(k)) }

// Add composes two keys into a Typing sequence holding exactly the two
// code points, in argument order.
func (k Key) Add(other Key) Typing {
	return Typing{data: []rune{rune(k), rune(other)}}
}

// Typing is an ordered sequence of code points composed from literal text
// and symbolic keys, intended to be sent to the remote end as one input
// operation. The zero value is an empty sequence.
//
// All composition methods return a new Typing and never modify their
// receiver or operands, so concatenation is associative and
// order-preserving.
type Typing struct {
	data []rune
}

// From converts a literal string into a Typing holding its sequence of
// Unicode scalar values, losslessly.
func From(s string) Typing {
	return Typing{data: []rune(s)}
}

// Of builds a Typing from the given keys, in argument order.
func Of(ks ...Key) Typing {
	data := make([]rune, len(ks))
	for i, k := range ks {
		data[i] = rune(k)
	}
	return Typing{data: data}
}

// Concat returns the concatenation of t followed by u.
func (t Typing) Concat(u Typing) Typing {
	data := make([]rune, 0, len(t.data)+len(u.data))
	data = append(data, t.data...)
	data = append(data, u.data...)
	return Typing{data: data}
}

// Append returns t with the key's code point appended.
func (t Typing) Append(k Key) Typing {
	data := make([]rune, 0, len(t.data)+1)
	data = append(data, t.data...)
	data = append(data, rune(k))
	return Typing{data: data}
}

// Text returns t with the literal string's code points appended.
func (t Typing) Text(s string) Typing {
	return t.Concat(From(s))
}

// Len reports the number of code points in the sequence.
func (t Typing) Len() int { return len(t.data) }

// Runes returns a copy of the sequence's code points.
func (t Typing) Runes() []rune {
	data := make([]rune, len(t.data))
	copy(data, t.data)
	return data
}

// String returns the sequence as a string. Converting the result back with
// From yields an identical sequence.
func (t Typing) String() string { return string(t.data) }
