package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puffin/ecs"
)

// ComponentInspector shows and edits the exported fields of every component
// of the selected entity. Numeric and boolean fields are edited in place.
type ComponentInspector struct{}

func (ci *ComponentInspector) Render(e *ecs.Entity) {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if e == nil {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.ID()))
	x, y := float32(e.X()), float32(e.Y())
	imgui.SetNextItemWidth(150)
	if imgui.InputFloat("X", &x) {
		e.Move(float64(x), e.Y())
	}
	imgui.SetNextItemWidth(150)
	if imgui.InputFloat("Y", &y) {
		e.Move(e.X(), float64(y))
	}
	imgui.Separator()

	for _, kind := range e.Kinds() {
		c := e.Component(kind)
		if c == nil {
			continue
		}
		if imgui.TreeNodeStr(kind.String()) {
			ci.renderStruct(kind.String(), reflect.ValueOf(c).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderStruct(id string, val reflect.Value) {
	for _, field := range fieldsOf(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(id+"."+field.Name, field.Name, fieldVal)
	}
}

func (ci *ComponentInspector) renderField(id, name string, val reflect.Value) {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("%s##%s", name, id), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("%s##%s", name, id), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("%s##%s", name, id), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(fmt.Sprintf("%s##%s", name, id), &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(fmt.Sprintf("%s##%s", name, id)) {
			ci.renderStruct(id, val)
			imgui.TreePop()
		}

	case reflect.Func:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
		} else {
			imgui.Text(fmt.Sprintf("%s: set", name))
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %s", name, describe(val)))
	}
}

// describe formats read-only values.
func describe(val reflect.Value) string {
	switch val.Kind() {
	case reflect.String:
		return fmt.Sprintf("%q", val.String())
	case reflect.Slice:
		return fmt.Sprintf("[%d items]", val.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", val.Len())
	}
	if val.CanInterface() {
		return fmt.Sprintf("%v", val.Interface())
	}
	return val.Type().String()
}
