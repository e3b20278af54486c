package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/kamstrup/intmap"

	"github.com/plus3/circles/ecs"
)

// EntityInfo is one row of the inspector's entity list.
type EntityInfo struct {
	ID         ecs.EntityId
	Archetype  uint32
	Components []string
}

// WorldInspector lists every entity and lets the selected one's component
// fields be edited in place.
type WorldInspector struct {
	storage  *ecs.Storage
	filter   string
	selected ecs.EntityId

	entities []EntityInfo
	// entity id -> position in entities, rebuilt with the list
	rows *intmap.Map[ecs.EntityId, int]
}

func NewWorldInspector(storage *ecs.Storage) *WorldInspector {
	return &WorldInspector{
		storage: storage,
		rows:    intmap.New[ecs.EntityId, int](64),
	}
}

// Refresh rebuilds the entity list from storage.
func (wi *WorldInspector) Refresh() {
	wi.entities = wi.entities[:0]
	wi.rows.Clear()

	for _, archetype := range wi.storage.GetArchetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			wi.rows.Put(id, len(wi.entities))
			wi.entities = append(wi.entities, EntityInfo{
				ID:         id,
				Archetype:  archetype.ID(),
				Components: names,
			})
		}
	}

	if _, ok := wi.rows.Get(wi.selected); !ok {
		wi.selected = 0
	}
}

// Filtered returns the entities whose id, archetype or component names
// contain the filter text, ignoring case.
func (wi *WorldInspector) Filtered() []EntityInfo {
	if wi.filter == "" {
		return wi.entities
	}
	needle := strings.ToLower(wi.filter)

	out := make([]EntityInfo, 0, len(wi.entities))
	for _, e := range wi.entities {
		haystack := strings.ToLower(fmt.Sprintf("%d 0x%x %s", e.ID, e.Archetype, strings.Join(e.Components, " ")))
		if strings.Contains(haystack, needle) {
			out = append(out, e)
		}
	}
	return out
}

// SetFilter sets the filter text.
func (wi *WorldInspector) SetFilter(text string) {
	wi.filter = text
}

// Select marks id as the inspected entity. Unknown ids clear the selection.
func (wi *WorldInspector) Select(id ecs.EntityId) {
	if _, ok := wi.rows.Get(id); ok {
		wi.selected = id
	} else {
		wi.selected = 0
	}
}

// Selected returns the inspected entity, or 0.
func (wi *WorldInspector) Selected() ecs.EntityId {
	return wi.selected
}

// SetField writes value into the named numeric field of the selected
// entity's component of type t.
func (wi *WorldInspector) SetField(t reflect.Type, name string, value float64) bool {
	if wi.selected == 0 {
		return false
	}
	comp := wi.storage.GetComponent(wi.selected, t)
	if comp == nil {
		return false
	}
	field := reflect.ValueOf(comp).Elem().FieldByName(name)
	if !field.IsValid() {
		return false
	}
	return setNumber(field, value)
}

func (wi *WorldInspector) Render() {
	wi.Refresh()

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("World Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &wi.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		wi.filter = ""
	}

	filtered := wi.Filtered()
	imgui.Text(fmt.Sprintf("%d / %d entities", len(filtered), len(wi.entities)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Entities", 2, tableFlags, imgui.NewVec2(0, 160), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, e := range filtered {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", e.ID), wi.selected == e.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				wi.selected = e.ID
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(e.Components, ", "))
		}
		imgui.EndTable()
	}

	imgui.Separator()
	wi.renderSelected()
	imgui.End()
}

func (wi *WorldInspector) renderSelected() {
	row, ok := wi.rows.Get(wi.selected)
	if !ok {
		imgui.Text("No entity selected")
		return
	}
	info := wi.entities[row]
	imgui.Text(fmt.Sprintf("Entity %d (archetype 0x%X)", info.ID, info.Archetype))

	archetype := wi.storage.GetArchetypeById(info.Archetype)
	for _, t := range archetype.Types() {
		comp := wi.storage.GetComponent(info.ID, t)
		if comp == nil {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			renderValue(reflect.ValueOf(comp).Elem())
			imgui.TreePop()
		}
	}
}

func renderValue(v reflect.Value) {
	for _, f := range fields.Fields(v.Type()) {
		renderField(f.Name, v.Field(f.Index))
	}
}

func renderField(name string, v reflect.Value) {
	label := fmt.Sprintf("%s##%p", name, v.Addr().UnsafePointer())

	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		if imgui.InputFloat(label, &f) {
			setNumber(v, float64(f))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := int32(v.Int())
		if imgui.InputInt(label, &i) {
			setNumber(v, float64(i))
		}
	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(label, &b) {
			v.SetBool(b)
		}
	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(v)
			imgui.TreePop()
		}
	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))
	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
	}
}
