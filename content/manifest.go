// Package content loads the mesh bounds, material handles and prefab
// definitions the simulation consumes from a YAML manifest.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/plus3/fixedsim/sim"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultManifest []byte

type MeshEntry struct {
	Name   string     `yaml:"name"`
	Handle uint32     `yaml:"handle"`
	Bounds BoundsYAML `yaml:"bounds"`
}

type BoundsYAML struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

type MaterialEntry struct {
	Name   string `yaml:"name"`
	Handle uint32 `yaml:"handle"`
}

type PrefabEntry struct {
	Name     string `yaml:"name"`
	Mesh     string `yaml:"mesh"`
	Material string `yaml:"material"`
}

type manifestFile struct {
	Meshes    []MeshEntry     `yaml:"meshes"`
	Materials []MaterialEntry `yaml:"materials"`
	Prefabs   []PrefabEntry   `yaml:"prefabs"`
}

// Manifest is an in-memory content collaborator. It satisfies sim.Content.
type Manifest struct {
	meshes    map[string]sim.MeshInfo
	materials map[string]sim.MaterialHandle
	prefabs   []sim.PrefabDef
}

// Load reads a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// LoadOrDefault is Load, except that an empty path yields the built-in
// manifest.
func LoadOrDefault(path string) (*Manifest, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Default returns the built-in manifest.
func Default() *Manifest {
	m, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("content: built-in manifest: %v", err))
	}
	return m
}

// Parse decodes a manifest. Duplicate names are rejected; prefab references
// are resolved later, by BuildPrefabs.
func Parse(data []byte) (*Manifest, error) {
	var f manifestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	m := &Manifest{
		meshes:    make(map[string]sim.MeshInfo, len(f.Meshes)),
		materials: make(map[string]sim.MaterialHandle, len(f.Materials)),
		prefabs:   make([]sim.PrefabDef, 0, len(f.Prefabs)),
	}
	for _, e := range f.Meshes {
		if _, dup := m.meshes[e.Name]; dup {
			return nil, fmt.Errorf("duplicate mesh %q", e.Name)
		}
		m.meshes[e.Name] = sim.MeshInfo{
			Handle: sim.MeshHandle(e.Handle),
			Bounds: sim.AABB{Min: e.Bounds.Min, Max: e.Bounds.Max},
		}
	}
	for _, e := range f.Materials {
		if _, dup := m.materials[e.Name]; dup {
			return nil, fmt.Errorf("duplicate material %q", e.Name)
		}
		m.materials[e.Name] = sim.MaterialHandle(e.Handle)
	}
	seen := make(map[string]bool, len(f.Prefabs))
	for _, e := range f.Prefabs {
		if seen[e.Name] {
			return nil, fmt.Errorf("duplicate prefab %q", e.Name)
		}
		seen[e.Name] = true
		m.prefabs = append(m.prefabs, sim.PrefabDef{Name: e.Name, Mesh: e.Mesh, Material: e.Material})
	}
	return m, nil
}

func (m *Manifest) Mesh(name string) (sim.MeshInfo, error) {
	info, ok := m.meshes[name]
	if !ok {
		return sim.MeshInfo{}, fmt.Errorf("%w: %q", sim.ErrUnknownMesh, name)
	}
	return info, nil
}

func (m *Manifest) Material(name string) (sim.MaterialHandle, error) {
	handle, ok := m.materials[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", sim.ErrUnknownMaterial, name)
	}
	return handle, nil
}

// PrefabDefs returns the prefab definitions in manifest order.
func (m *Manifest) PrefabDefs() []sim.PrefabDef {
	return m.prefabs
}

// BuildPrefabs resolves the manifest's prefabs against its own meshes and
// materials.
func (m *Manifest) BuildPrefabs() (*sim.Prefabs, error) {
	return sim.BuildPrefabs(m, m.prefabs)
}
