package input

// AnswerField is the single-line answer entry
// Accepts digits, one leading minus sign and one decimal point, up to limit runes
type AnswerField struct {
	runes []rune
	limit int
}

// NewAnswerField creates an empty field holding at most limit runes
func NewAnswerField(limit int) *AnswerField {
	if limit <= 0 {
		limit = 1
	}
	return &AnswerField{runes: make([]rune, 0, limit), limit: limit}
}

// Insert appends r if it keeps the text a numeric prefix; reports whether it was accepted
func (f *AnswerField) Insert(r rune) bool {
	if len(f.runes) >= f.limit {
		return false
	}
	switch {
	case r >= '0' && r <= '9':
	case r == '-':
		if len(f.runes) > 0 {
			return false
		}
	case r == '.':
		for _, c := range f.runes {
			if c == '.' {
				return false
			}
		}
	default:
		return false
	}
	f.runes = append(f.runes, r)
	return true
}

// Backspace removes the last rune
func (f *AnswerField) Backspace() {
	if len(f.runes) > 0 {
		f.runes = f.runes[:len(f.runes)-1]
	}
}

// Clear empties the field
func (f *AnswerField) Clear() {
	f.runes = f.runes[:0]
}

// String returns the current text
func (f *AnswerField) String() string {
	return string(f.runes)
}

// Take returns the current text and clears the field
func (f *AnswerField) Take() string {
	s := string(f.runes)
	f.Clear()
	return s
}
