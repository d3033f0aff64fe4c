package record

// Feature is one read feature: a difference between the read and the
// reference, located by a 1-based position within the read.
type Feature interface {
	// Operator returns the feature's operator byte.
	Operator() byte
}

// NoCode marks a substitution whose rank code has not been assigned yet.
// Planning replaces it with the code from the substitution matrix.
const NoCode int8 = -1

// Substitution records a read base differing from the reference base.
type Substitution struct {
	Pos     int32
	RefBase byte
	Base    byte
	Code    int8
}

// NewSubstitution builds a substitution with the code unset.
func NewSubstitution(pos int32, refBase, base byte) *Substitution {
	return &Substitution{Pos: pos, RefBase: refBase, Base: base, Code: NoCode}
}

func (s *Substitution) Operator() byte { return 'X' }

// Insertion records bases present in the read but not the reference.
type Insertion struct {
	Pos   int32
	Bases []byte
}

func (i *Insertion) Operator() byte { return 'I' }

// Deletion records reference bases absent from the read.
type Deletion struct {
	Pos    int32
	Length int32
}

func (d *Deletion) Operator() byte { return 'D' }

// SoftClip records read bases excluded from the alignment.
type SoftClip struct {
	Pos   int32
	Bases []byte
}

func (s *SoftClip) Operator() byte { return 'S' }
