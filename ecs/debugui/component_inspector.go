package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fixedsim/ecs"
)

// Component is one named component of an entity. Value must be a pointer to
// a struct so edits are written back into the owning system.
type Component struct {
	Name  string
	Value any
}

// ComponentSource resolves an entity's components. The simulation's owner
// implements it, since only it knows the concrete systems.
type ComponentSource interface {
	Components(id ecs.EntityId) []Component
}

type fieldInfo struct {
	Name  string
	Index int
}

// fieldCache memoizes the exported fields of component types. It is only
// touched from the UI goroutine.
type fieldCache map[reflect.Type][]fieldInfo

func (c fieldCache) fields(t reflect.Type) []fieldInfo {
	if cached, ok := c[t]; ok {
		return cached
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, fieldInfo{Name: f.Name, Index: i})
			}
		}
	}
	c[t] = fields
	return fields
}

// ComponentInspector shows and edits the components of the entity selected
// in an EntityBrowser.
type ComponentInspector struct {
	source ComponentSource
	cache  fieldCache
}

func NewComponentInspector(source ComponentSource) *ComponentInspector {
	return &ComponentInspector{
		source: source,
		cache:  make(fieldCache),
	}
}

func (ci *ComponentInspector) Render(registry *ecs.Registry, selected ecs.EntityId, hasSelection bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !hasSelection {
		imgui.Text("No entity selected")
		return
	}
	if !registry.Alive(selected) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", selected))
	if registry.Queued(selected) {
		imgui.SameLine()
		imgui.Text("(removal queued)")
	}
	imgui.Separator()

	for _, component := range ci.source.Components(selected) {
		val := reflect.ValueOf(component.Value)
		if val.Kind() != reflect.Ptr || val.IsNil() {
			continue
		}
		if imgui.TreeNodeStr(component.Name) {
			ci.renderStruct(component.Name, val.Elem())
			imgui.TreePop()
		}
	}

	if imgui.Button("Queue Removal") {
		registry.QueueRemove(selected)
	}
}

func (ci *ComponentInspector) renderStruct(path string, val reflect.Value) {
	for _, field := range ci.cache.fields(val.Type()) {
		ci.renderField(path+"."+field.Name, field.Name, val.Field(field.Index))
	}
}

// renderField draws an editor for val. id keeps ImGui widget ids unique
// across nested fields with the same name.
func (ci *ComponentInspector) renderField(id, name string, val reflect.Value) {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		ci.label(name)
		if imgui.InputInt("##"+id, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		ci.label(name)
		if imgui.InputInt("##"+id, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		ci.label(name)
		if imgui.InputFloat("##"+id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+"##"+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Array:
		if imgui.TreeNodeStr(name + "##" + id) {
			for i := 0; i < val.Len(); i++ {
				ci.renderField(fmt.Sprintf("%s[%d]", id, i), fmt.Sprintf("[%d]", i), val.Index(i))
			}
			imgui.TreePop()
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + "##" + id) {
			ci.renderStruct(id, val)
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func (ci *ComponentInspector) label(name string) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
