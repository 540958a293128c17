package java

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/ecorify/classfile"
)

// Classpath looks up binary type declarations in directories and jar
// files. Entries are opened lazily and results are cached, misses
// included. It is not safe for concurrent use.
type Classpath struct {
	entries []string
	jars    map[string]*zip.ReadCloser
	cache   map[string]*TypeDecl
}

func NewClasspath(entries ...string) *Classpath {
	return &Classpath{
		entries: entries,
		jars:    map[string]*zip.ReadCloser{},
		cache:   map[string]*TypeDecl{},
	}
}

// Close releases every opened jar file.
func (cp *Classpath) Close() error {
	var errs []error
	for path, jar := range cp.jars {
		if err := jar.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
	}
	cp.jars = map[string]*zip.ReadCloser{}
	return errors.Join(errs...)
}

// internalCandidates lists the internal names a dotted name may denote,
// from "a/b/C/D" (all package) to "a$b$C$D".
func internalCandidates(qualifiedName string) []string {
	parts := strings.Split(qualifiedName, ".")
	var out []string
	for split := len(parts) - 1; split >= 0; split-- {
		name := strings.Join(parts[split:], "$")
		if split > 0 {
			name = strings.Join(parts[:split], "/") + "/" + name
		}
		out = append(out, name)
	}
	return out
}

// Find returns the declaration of a dotted type name, or nil when no entry
// has it. Unreadable class files are errors.
func (cp *Classpath) Find(qualifiedName string) (*TypeDecl, error) {
	if cp == nil || len(cp.entries) == 0 || qualifiedName == "" {
		return nil, nil
	}
	for _, internal := range internalCandidates(qualifiedName) {
		t, err := cp.findInternal(internal)
		if err != nil || t != nil {
			return t, err
		}
	}
	return nil, nil
}

func (cp *Classpath) findInternal(internal string) (*TypeDecl, error) {
	if t, ok := cp.cache[internal]; ok {
		return t, nil
	}
	cf, err := cp.readClass(internal)
	if err != nil {
		return nil, fmt.Errorf("read class %s: %w", internal, err)
	}
	if cf == nil || cf.IsModule() || cf.IsAnonymousOrLocal() {
		cp.cache[internal] = nil
		return nil, nil
	}
	t, err := TypeDeclFromClassFile(cf)
	if err != nil {
		return nil, fmt.Errorf("read class %s: %w", internal, err)
	}
	cp.cache[internal] = t
	if outer := cf.OuterClass(); outer != "" {
		enclosing, err := cp.findInternal(outer)
		if err != nil {
			return nil, err
		}
		t.Enclosing = enclosing
		if enclosing != nil && enclosing.Member(t.Name) == nil {
			enclosing.Members = append(enclosing.Members, t)
		}
	}
	return t, nil
}

func (cp *Classpath) readClass(internal string) (*classfile.ClassFile, error) {
	name := internal + ".class"
	for _, entry := range cp.entries {
		if strings.HasSuffix(entry, ".jar") {
			jar, err := cp.openJar(entry)
			if err != nil {
				return nil, err
			}
			f, err := jar.Open(name)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return classfile.Parse(f)
		}
		path := filepath.Join(entry, filepath.FromSlash(name))
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		return classfile.ParseFile(path)
	}
	return nil, nil
}

func (cp *Classpath) openJar(path string) (*zip.ReadCloser, error) {
	if jar, ok := cp.jars[path]; ok {
		return jar, nil
	}
	jar, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open jar: %w", err)
	}
	cp.jars[path] = jar
	return jar, nil
}
