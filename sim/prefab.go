package sim

import "fmt"

// MeshHandle and MaterialHandle are opaque to the simulation. The content
// collaborator hands them out and the renderer interprets them.
type (
	MeshHandle     uint32
	MaterialHandle uint32
)

// MeshInfo is what the content collaborator knows about a mesh.
type MeshInfo struct {
	Handle MeshHandle
	Bounds AABB
}

// Content supplies mesh bounds and material handles by name.
type Content interface {
	Mesh(name string) (MeshInfo, error)
	Material(name string) (MaterialHandle, error)
}

// PrefabDef names the mesh and material a prefab is built from.
type PrefabDef struct {
	Name     string
	Mesh     string
	Material string
}

// PrefabId indexes a Prefabs registry.
type PrefabId int

// Prefab is a reusable render component plus the bounds copied into new
// colliders.
type Prefab struct {
	Id       PrefabId
	Name     string
	Mesh     MeshHandle
	Material MaterialHandle
	Bounds   AABB
}

// Prefabs is the registry of prefabricated render components. It is built
// during setup and passed to whatever creates entities.
type Prefabs struct {
	byName map[string]PrefabId
	list   []Prefab
}

func NewPrefabs() *Prefabs {
	return &Prefabs{byName: make(map[string]PrefabId)}
}

// BuildPrefabs resolves every definition through content.
func BuildPrefabs(content Content, defs []PrefabDef) (*Prefabs, error) {
	prefabs := NewPrefabs()
	for _, def := range defs {
		mesh, err := content.Mesh(def.Mesh)
		if err != nil {
			return nil, fmt.Errorf("prefab %q: %w", def.Name, err)
		}
		material, err := content.Material(def.Material)
		if err != nil {
			return nil, fmt.Errorf("prefab %q: %w", def.Name, err)
		}
		prefabs.Register(def.Name, mesh, material)
	}
	return prefabs, nil
}

// Register adds a prefab, or replaces the one with the same name in place.
func (p *Prefabs) Register(name string, mesh MeshInfo, material MaterialHandle) PrefabId {
	if id, ok := p.byName[name]; ok {
		p.list[id] = Prefab{Id: id, Name: name, Mesh: mesh.Handle, Material: material, Bounds: mesh.Bounds}
		return id
	}
	id := PrefabId(len(p.list))
	p.list = append(p.list, Prefab{Id: id, Name: name, Mesh: mesh.Handle, Material: material, Bounds: mesh.Bounds})
	p.byName[name] = id
	return id
}

func (p *Prefabs) Lookup(name string) (PrefabId, bool) {
	id, ok := p.byName[name]
	return id, ok
}

// Require is Lookup for names the caller cannot run without.
func (p *Prefabs) Require(name string) (PrefabId, error) {
	id, ok := p.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPrefab, name)
	}
	return id, nil
}

// Get returns the prefab with id, or nil.
func (p *Prefabs) Get(id PrefabId) *Prefab {
	if id < 0 || int(id) >= len(p.list) {
		return nil
	}
	return &p.list[id]
}

func (p *Prefabs) Len() int {
	return len(p.list)
}
