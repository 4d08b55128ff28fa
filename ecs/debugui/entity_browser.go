package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fixedsim/ecs"
)

type EntityInfo struct {
	ID      ecs.EntityId
	Kinds   []string
	Pending bool
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastCount     int
	lastLen       int
	lastPending   int
	sortColumn    int
	sortAscending bool
}

// EntityBrowser lists the live entities of a registry with the systems each
// belongs to.
type EntityBrowser struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	hasSelection       bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(registry *ecs.Registry) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(registry)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filteredEntities := eb.Filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Systems")
		imgui.TableSetupColumn("Pending")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			sortSpec := sortSpecs.Specs()
			eb.SortBy(int(sortSpec.ColumnIndex()), sortSpec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.Filtered()
		}

		startIdx, endIdx := eb.pageRange(len(filteredEntities))
		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Kinds, ", "))

			imgui.TableNextColumn()
			if entity.Pending {
				imgui.Text("removal")
			}
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

func (eb *EntityBrowser) pageRange(total int) (int, int) {
	startIdx := eb.currentPage * eb.maxEntitiesPerPage
	if startIdx > total {
		eb.currentPage = 0
		startIdx = 0
	}
	return startIdx, min(startIdx+eb.maxEntitiesPerPage, total)
}

// Refresh rebuilds the cached rows when the registry's population or removal
// queue changed since the last call.
func (eb *EntityBrowser) Refresh(registry *ecs.Registry) {
	count, length, pending := registry.Count(), registry.Len(), registry.Pending()
	if eb.cache.entities != nil && count == eb.cache.lastCount && length == eb.cache.lastLen && pending == eb.cache.lastPending {
		return
	}
	eb.cache.lastCount, eb.cache.lastLen, eb.cache.lastPending = count, length, pending
	eb.rebuildCache(registry)

	if eb.hasSelection && !registry.Alive(eb.selectedEntityId) {
		eb.hasSelection = false
	}
}

func (eb *EntityBrowser) rebuildCache(registry *ecs.Registry) {
	eb.cache.entities = make([]EntityInfo, 0, registry.Count())

	for id := range registry.Iter() {
		kinds := registry.Kinds(id)
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:      id,
			Kinds:   names,
			Pending: registry.Queued(id),
		})
	}

	eb.sortEntities()
}

// SortBy orders the rows by column 0 (id), 1 (systems) or 2 (pending).
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.cache.sortColumn = column
	eb.cache.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.Kinds, ",") < strings.Join(b.Kinds, ",")
		case 2:
			less = !a.Pending && b.Pending
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

// SetFilter sets the search text matched against ids and system names.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
}

// Filtered returns the cached rows matching the filter text.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		kindsStr := strings.Join(entity.Kinds, " ")

		if !strings.Contains(idStr, filterLower) && !strings.Contains(kindsStr, filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
	eb.hasSelection = true
}

// Selected returns the selected entity, if any.
func (eb *EntityBrowser) Selected() (ecs.EntityId, bool) {
	return eb.selectedEntityId, eb.hasSelection
}
