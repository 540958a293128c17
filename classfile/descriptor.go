package classfile

import (
	"fmt"
	"strings"
)

// TypeParameter is a formal type parameter of a generic signature. Bounds
// hold field type signatures; an empty class bound is omitted.
type TypeParameter struct {
	Name   string
	Bounds []string
}

// ClassSignature is the decoded Signature attribute of a class.
type ClassSignature struct {
	TypeParameters []TypeParameter
	SuperClass     string
	Interfaces     []string
}

// MethodSignature is a decoded method descriptor or Signature attribute.
type MethodSignature struct {
	TypeParameters []TypeParameter
	Parameters     []string
	Return         string
	Throws         []string
}

type sigScanner struct {
	s   string
	pos int
}

func (sc *sigScanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *sigScanner) peek() byte {
	if sc.done() {
		return 0
	}
	return sc.s[sc.pos]
}

// fieldType consumes one field type signature, including array
// dimensions and type arguments.
func (sc *sigScanner) fieldType() (string, error) {
	start := sc.pos
	for sc.peek() == '[' {
		sc.pos++
	}
	if sc.done() {
		return "", fmt.Errorf("truncated signature %q", sc.s)
	}
	switch sc.s[sc.pos] {
	case 'L', 'T':
		depth := 0
		for sc.pos++; !sc.done(); sc.pos++ {
			switch sc.s[sc.pos] {
			case '<':
				depth++
			case '>':
				depth--
			case ';':
				if depth == 0 {
					sc.pos++
					return sc.s[start:sc.pos], nil
				}
			}
		}
		return "", fmt.Errorf("unterminated type in %q", sc.s)
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 'V':
		sc.pos++
		return sc.s[start:sc.pos], nil
	}
	return "", fmt.Errorf("unexpected %q at %d in %q", sc.s[sc.pos], sc.pos, sc.s)
}

func (sc *sigScanner) typeParameters() ([]TypeParameter, error) {
	if sc.peek() != '<' {
		return nil, nil
	}
	sc.pos++
	var params []TypeParameter
	for !sc.done() && sc.peek() != '>' {
		colon := strings.IndexByte(sc.s[sc.pos:], ':')
		if colon < 0 {
			return nil, fmt.Errorf("type parameter without bound in %q", sc.s)
		}
		tp := TypeParameter{Name: sc.s[sc.pos : sc.pos+colon]}
		sc.pos += colon
		for sc.peek() == ':' {
			sc.pos++
			if sc.peek() == ':' {
				continue
			}
			bound, err := sc.fieldType()
			if err != nil {
				return nil, err
			}
			tp.Bounds = append(tp.Bounds, bound)
		}
		params = append(params, tp)
	}
	sc.pos++
	return params, nil
}

func ParseClassSignature(sig string) (*ClassSignature, error) {
	sc := &sigScanner{s: sig}
	tps, err := sc.typeParameters()
	if err != nil {
		return nil, err
	}
	cs := &ClassSignature{TypeParameters: tps}
	if cs.SuperClass, err = sc.fieldType(); err != nil {
		return nil, err
	}
	for !sc.done() {
		iface, err := sc.fieldType()
		if err != nil {
			return nil, err
		}
		cs.Interfaces = append(cs.Interfaces, iface)
	}
	return cs, nil
}

// ParseMethodSignature decodes either a plain method descriptor or a
// generic method signature.
func ParseMethodSignature(sig string) (*MethodSignature, error) {
	sc := &sigScanner{s: sig}
	tps, err := sc.typeParameters()
	if err != nil {
		return nil, err
	}
	ms := &MethodSignature{TypeParameters: tps}
	if sc.peek() != '(' {
		return nil, fmt.Errorf("missing parameter list in %q", sig)
	}
	sc.pos++
	for !sc.done() && sc.peek() != ')' {
		p, err := sc.fieldType()
		if err != nil {
			return nil, err
		}
		ms.Parameters = append(ms.Parameters, p)
	}
	sc.pos++
	if ms.Return, err = sc.fieldType(); err != nil {
		return nil, err
	}
	for sc.peek() == '^' {
		sc.pos++
		t, err := sc.fieldType()
		if err != nil {
			return nil, err
		}
		ms.Throws = append(ms.Throws, t)
	}
	return ms, nil
}
