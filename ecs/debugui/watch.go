package debugui

import "github.com/AllenDang/cimgui-go/imgui"

func (w *WatchComponent) Render() {
	title := w.title
	if title == "" {
		title = "Watch"
	}
	if !imgui.BeginV(title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("WatchTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		for _, f := range w.fields() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(f.Label)
			imgui.TableNextColumn()
			imgui.Text(f.Value)
		}
		imgui.EndTable()
	}

	imgui.End()
}

// Struct formats a value's exported fields for a watch panel.
func Struct(prefix string, v any) []Field {
	rows := globalReflectionCache.Format(v)
	if prefix == "" {
		return rows
	}
	for i := range rows {
		rows[i].Label = prefix + "." + rows[i].Label
	}
	return rows
}
