package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	cp, err := readConstantPool(r)
	if err != nil {
		return nil, fmt.Errorf("read constant pool: %w", err)
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.Name = cp.ClassName(r.readU2())
	if super := r.readU2(); super != 0 {
		cf.SuperName = cp.ClassName(super)
	}
	interfaces := r.readU2()
	for i := uint16(0); i < interfaces; i++ {
		cf.Interfaces = append(cf.Interfaces, cp.ClassName(r.readU2()))
	}
	if r.err != nil {
		return nil, fmt.Errorf("read class info: %w", r.err)
	}

	if cf.Fields, err = readMembers(r, cp); err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}
	if cf.Methods, err = readMembers(r, cp); err != nil {
		return nil, fmt.Errorf("read methods: %w", err)
	}

	err = readAttributes(r, cp, func(name string, info []byte) error {
		switch name {
		case "Signature":
			cf.Signature = signatureAttribute(info, cp)
		case "InnerClasses":
			cf.InnerClasses = innerClassesAttribute(info, cp)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read class attributes: %w", err)
	}
	return cf, nil
}

func readMembers(r *reader, cp ConstantPool) ([]Member, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	members := make([]Member, count)
	for i := range members {
		m := &members[i]
		m.AccessFlags = AccessFlags(r.readU2())
		m.Name = cp.Utf8(r.readU2())
		m.Descriptor = cp.Utf8(r.readU2())
		err := readAttributes(r, cp, func(name string, info []byte) error {
			switch name {
			case "Signature":
				m.Signature = signatureAttribute(info, cp)
			case "Exceptions":
				m.Exceptions = exceptionsAttribute(info, cp)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
	}
	return members, nil
}

func readAttributes(r *reader, cp ConstantPool, fn func(name string, info []byte) error) error {
	count := r.readU2()
	for i := uint16(0); i < count && r.err == nil; i++ {
		name := cp.Utf8(r.readU2())
		info := r.readBytes(int(r.readU4()))
		if r.err != nil {
			break
		}
		if err := fn(name, info); err != nil {
			return err
		}
	}
	return r.err
}

func signatureAttribute(info []byte, cp ConstantPool) string {
	if len(info) < 2 {
		return ""
	}
	return cp.Utf8(binary.BigEndian.Uint16(info))
}

func exceptionsAttribute(info []byte, cp ConstantPool) []string {
	r := &reader{r: bytes.NewReader(info)}
	count := r.readU2()
	var out []string
	for i := uint16(0); i < count && r.err == nil; i++ {
		if name := cp.ClassName(r.readU2()); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func innerClassesAttribute(info []byte, cp ConstantPool) []InnerClass {
	r := &reader{r: bytes.NewReader(info)}
	count := r.readU2()
	var out []InnerClass
	for i := uint16(0); i < count; i++ {
		ic := InnerClass{
			Inner: cp.ClassName(r.readU2()),
			Outer: cp.ClassName(r.readU2()),
		}
		ic.SimpleName = cp.Utf8(r.readU2())
		ic.AccessFlags = AccessFlags(r.readU2())
		if r.err != nil {
			break
		}
		out = append(out, ic)
	}
	return out
}
