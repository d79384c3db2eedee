package course

import (
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

const (
	courseFile = "course.yaml"
	modulesDir = "modules"
)

//go:embed content
var embedded embed.FS

// Embedded returns the course content compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(err)
	}
	return sub
}

// Open loads the catalog from dir, or from the embedded content when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Load(Embedded())
	}
	return Load(os.DirFS(dir))
}

// Load reads course.yaml and modules/*.yaml from fsys and builds the catalog.
// Modules are ordered by file name.
func Load(fsys fs.FS) (*Catalog, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, fmt.Errorf("creating content hash: %w", err)
	}

	doc, err := loadCourse(fsys, h)
	if err != nil {
		return nil, err
	}

	modules, err := loadModules(fsys, h)
	if err != nil {
		return nil, err
	}

	c, err := NewCatalog(doc.Title, doc.Welcome, modules)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	c.version = hex.EncodeToString(h.Sum(nil))[:16]

	slog.Info("catalog loaded",
		"modules", len(c.modules),
		"lessons", c.LessonCount(),
		"version", c.version,
	)
	return c, nil
}

func loadCourse(fsys fs.FS, h hash.Hash) (courseDoc, error) {
	var doc courseDoc

	data, err := fs.ReadFile(fsys, courseFile)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("reading %s: %w", courseFile, err)
	}
	if err := validateDoc(courseSchema, data); err != nil {
		return doc, fmt.Errorf("%s: %w", courseFile, err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%s: %w", courseFile, err)
	}
	hashDoc(h, courseFile, data)

	doc.Title = nfc(doc.Title)
	doc.Welcome.Heading = nfc(doc.Welcome.Heading)
	doc.Welcome.Message = nfc(doc.Welcome.Message)
	return doc, nil
}

func loadModules(fsys fs.FS, h hash.Hash) ([]*Module, error) {
	entries, err := fs.ReadDir(fsys, modulesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", modulesDir, err)
	}

	var modules []*Module
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		p := path.Join(modulesDir, name)

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if err := validateDoc(moduleSchema, data); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		var m Module
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		normalizeModule(&m)
		hashDoc(h, p, data)

		modules = append(modules, &m)
	}
	return modules, nil
}

func hashDoc(h hash.Hash, name string, data []byte) {
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(data)
}

func normalizeModule(m *Module) {
	m.ID = nfc(m.ID)
	m.Title = nfc(m.Title)
	m.Description = nfc(m.Description)
	for _, l := range m.Lessons {
		l.ID = nfc(l.ID)
		l.Title = nfc(l.Title)
		l.Content = nfc(l.Content)
		for i := range l.Quiz {
			q := &l.Quiz[i]
			q.Question = nfc(q.Question)
			for j := range q.Options {
				q.Options[j] = nfc(q.Options[j])
			}
		}
		for i := range l.Exercises {
			ex := &l.Exercises[i]
			ex.Scenario = nfc(ex.Scenario)
			ex.ExpectedCommand = nfc(ex.ExpectedCommand)
		}
	}
}

func nfc(s string) string {
	return norm.NFC.String(s)
}
