package classfile

import "fmt"

// constant is one constant pool slot. Only the entries needed to recover
// names are kept: UTF-8 text and the name index of class constants.
type constant struct {
	tag   ConstantTag
	utf8  string
	index uint16
}

// ConstantPool is indexed like the class file: entry 0 is unused, and the
// slot after a long or double constant is empty.
type ConstantPool []constant

func (cp ConstantPool) Utf8(index uint16) string {
	if int(index) >= len(cp) || cp[index].tag != ConstantUtf8 {
		return ""
	}
	return cp[index].utf8
}

// ClassName returns the internal name ("java/lang/String") of a class
// constant.
func (cp ConstantPool) ClassName(index uint16) string {
	if int(index) >= len(cp) || cp[index].tag != ConstantClass {
		return ""
	}
	return cp.Utf8(cp[index].index)
}

// entrySize is the number of bytes following the tag of a constant that
// is skipped rather than decoded.
var entrySize = map[ConstantTag]int{
	ConstantInteger:            4,
	ConstantFloat:              4,
	ConstantLong:               8,
	ConstantDouble:             8,
	ConstantString:             2,
	ConstantFieldref:           4,
	ConstantMethodref:          4,
	ConstantInterfaceMethodref: 4,
	ConstantNameAndType:        4,
	ConstantMethodHandle:       3,
	ConstantMethodType:         2,
	ConstantDynamic:            4,
	ConstantInvokeDynamic:      4,
	ConstantModule:             2,
	ConstantPackage:            2,
}

func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	cp := make(ConstantPool, count)
	for i := 1; i < int(count); i++ {
		tag := ConstantTag(r.readU1())
		switch tag {
		case ConstantUtf8:
			n := r.readU2()
			cp[i] = constant{tag: tag, utf8: decodeModifiedUtf8(r.readBytes(int(n)))}
		case ConstantClass:
			cp[i] = constant{tag: tag, index: r.readU2()}
		default:
			size, ok := entrySize[tag]
			if !ok {
				return nil, fmt.Errorf("constant %d: unknown tag %d", i, tag)
			}
			r.readBytes(size)
			cp[i] = constant{tag: tag}
			if tag == ConstantLong || tag == ConstantDouble {
				i++
			}
		}
		if r.err != nil {
			return nil, fmt.Errorf("constant %d: %w", i, r.err)
		}
	}
	return cp, nil
}

func decodeModifiedUtf8(b []byte) string {
	runes := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			runes = append(runes, rune(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			runes = append(runes, rune(c&0x1F)<<6|rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(b) && b[i+3] == 0xED {
				low := rune(b[i+3]&0x0F)<<12 | rune(b[i+4]&0x3F)<<6 | rune(b[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, rune(c))
			i++
		}
	}
	return string(runes)
}
