package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puffin/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	Entity     *ecs.Entity
	ID         ecs.EntityID
	X, Y       float64
	UI         bool
	Components []string
}

// Describe builds browser rows for entities, keeping their order.
func Describe(entities []*ecs.Entity) []EntityInfo {
	rows := make([]EntityInfo, 0, len(entities))
	for _, e := range entities {
		kinds := e.Kinds()
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		rows = append(rows, EntityInfo{
			Entity:     e,
			ID:         e.ID(),
			X:          e.X(),
			Y:          e.Y(),
			UI:         e.IsUI(),
			Components: names,
		})
	}
	return rows
}

// Filter keeps the rows whose id or component names contain text, ignoring
// case.
func Filter(rows []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return rows
	}
	needle := strings.ToLower(text)
	var filtered []EntityInfo
	for _, row := range rows {
		idStr := fmt.Sprintf("%d", row.ID)
		componentsStr := strings.ToLower(strings.Join(row.Components, " "))
		if strings.Contains(idStr, needle) || strings.Contains(componentsStr, needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// SortRows orders rows by column: 0 id, 1 x, 2 y, 3 components.
func SortRows(rows []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = cmp.Compare(a.X, b.X)
		case 2:
			c = cmp.Compare(a.Y, b.Y)
		case 3:
			c = strings.Compare(strings.Join(a.Components, ","), strings.Join(b.Components, ","))
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

type EntityBrowser struct {
	selected           *ecs.Entity
	filterText         string
	sortColumn         int
	sortAscending      bool
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		sortAscending:      true,
		maxEntitiesPerPage: max(maxEntitiesPerPage, 1),
	}
}

// Selected returns the entity picked in the table, or nil.
func (eb *EntityBrowser) Selected() *ecs.Entity { return eb.selected }

func (eb *EntityBrowser) Select(e *ecs.Entity) { eb.selected = e }

// Rows returns the filtered and sorted rows for entities.
func (eb *EntityBrowser) Rows(entities []*ecs.Entity) []EntityInfo {
	if eb.selected != nil && !slices.Contains(entities, eb.selected) {
		eb.selected = nil
	}
	rows := Filter(Describe(entities), eb.filterText)
	SortRows(rows, eb.sortColumn, eb.sortAscending)
	return rows
}

func (eb *EntityBrowser) Render(entities []*ecs.Entity) {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	rows := eb.Rows(entities)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("X")
		imgui.TableSetupColumn("Y")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortRows(rows, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(rows))
		for i := startIdx; i < endIdx; i++ {
			row := rows[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d", row.ID)
			if row.UI {
				label += " (ui)"
			}
			if imgui.SelectableBoolV(label, eb.selected == row.Entity, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = row.Entity
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", row.X))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", row.Y))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))
		}

		imgui.EndTable()
	}

	if len(rows) > eb.maxEntitiesPerPage {
		totalPages := (len(rows) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		eb.currentPage = min(eb.currentPage, totalPages-1)
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.End()
}
