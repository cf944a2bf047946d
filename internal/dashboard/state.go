// Package dashboard owns the application state behind the trial dashboard:
// the loaded record set, the active filter, the comparison selection, and
// the render pipeline that turns them into charts and tables.
package dashboard

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/trialboard/internal/aggregate"
	"github.com/sells-group/trialboard/internal/compare"
	"github.com/sells-group/trialboard/internal/filter"
	"github.com/sells-group/trialboard/internal/model"
	"github.com/sells-group/trialboard/internal/render"
)

// Options configures an App.
type Options struct {
	// Quiet is the search-text debounce period; zero means the default.
	Quiet time.Duration
	// TopN bounds chart bucket counts when a chart does not set its own;
	// zero means unbounded.
	TopN int
}

// App is the single owner of mutable dashboard state. All mutation happens
// on one logical thread; the debounced search callback re-enters through
// the change hook once, after the quiet period.
type App struct {
	records   []model.StudyRecord
	state     model.FilterState
	selection compare.Selection
	views     ViewConfig
	opts      Options

	debounce *filter.Debouncer
	onChange func()
}

// New creates an App over an already-loaded record set.
func New(records []model.StudyRecord, views ViewConfig, opts Options) *App {
	return &App{
		records:  records,
		views:    views,
		opts:     opts,
		debounce: filter.NewDebouncer(opts.Quiet),
	}
}

// OnChange registers the hook invoked after a filter mutation takes
// effect. Discrete selectors fire it synchronously; search text fires it
// once per quiet period.
func (a *App) OnChange(fn func()) {
	a.onChange = fn
}

func (a *App) changed() {
	if a.onChange != nil {
		a.onChange()
	}
}

// WithFilter returns a fresh App over the same record set and views with
// the given filter already applied. Request-scoped callers use it so the
// shared App is never mutated off its owning thread.
func (a *App) WithFilter(state model.FilterState) *App {
	clone := New(a.records, a.views, a.opts)
	clone.state = state
	return clone
}

// Views returns the configured view definitions.
func (a *App) Views() ViewConfig {
	return a.views
}

// Records returns the full loaded record set.
func (a *App) Records() []model.StudyRecord {
	return a.records
}

// FilterState returns the active filter.
func (a *App) FilterState() model.FilterState {
	return a.state
}

// Filtered returns the records matching the active filter, in load order.
func (a *App) Filtered() []model.StudyRecord {
	return filter.Apply(a.records, a.state)
}

// SetSearchText updates the search filter after the quiet period. Rapid
// calls coalesce: only the final text is applied.
func (a *App) SetSearchText(text string) {
	a.debounce.Trigger(func() {
		a.state.SearchText = text
		a.changed()
	})
}

// SetYear applies the year filter synchronously; zero clears it.
func (a *App) SetYear(year int) {
	a.state.Year = year
	a.changed()
}

// SetDesign applies the design filter synchronously; empty clears it.
func (a *App) SetDesign(design string) {
	a.state.Design = design
	a.changed()
}

// SetCondition applies the condition filter synchronously; empty clears it.
func (a *App) SetCondition(condition string) {
	a.state.Condition = condition
	a.changed()
}

// ApplyFilter replaces the whole filter state synchronously. Programmatic
// callers (the serve API, exports) use this; interactive text input goes
// through SetSearchText so it debounces.
func (a *App) ApplyFilter(state model.FilterState) {
	a.debounce.Cancel()
	a.state = state
	a.changed()
}

// ClearFilters resets the filter state and cancels any pending search.
func (a *App) ClearFilters() {
	a.debounce.Cancel()
	a.state = model.FilterState{}
	a.changed()
}

// Study looks a record up by id over the full set.
func (a *App) Study(id string) (model.StudyRecord, bool) {
	for _, rec := range a.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return model.StudyRecord{}, false
}

// Select adds a study to the comparison set. compare.ErrSelectionFull
// means the caller must surface a warning and revert its control.
func (a *App) Select(id string) error {
	if _, ok := a.Study(id); !ok {
		return eris.Errorf("dashboard: unknown study id %s", id)
	}
	return a.selection.Select(id)
}

// Deselect removes a study from the comparison set.
func (a *App) Deselect(id string) {
	a.selection.Deselect(id)
}

// ClearSelection empties the comparison set.
func (a *App) ClearSelection() {
	a.selection.Clear()
}

// Selection returns the selected study ids in insertion order.
func (a *App) Selection() []string {
	return a.selection.IDs()
}

// CanCompare reports whether the comparison view is enabled.
func (a *App) CanCompare() bool {
	return a.selection.CanCompare()
}

// KPIs computes the headline figures over the filtered set.
func (a *App) KPIs() aggregate.KPIs {
	return aggregate.ComputeKPIs(a.Filtered())
}

// Economics computes the currency-partitioned economic series over the
// filtered set.
func (a *App) Economics() []aggregate.CurrencySeries {
	return aggregate.EconomicSeries(a.Filtered())
}

// Buckets aggregates the filtered set for one chart definition.
func (a *App) Buckets(def ChartDef) model.CategoryBucket {
	extract, ok := aggregate.ByName(def.Field)
	if !ok {
		return nil
	}
	buckets := aggregate.Count(a.Filtered(), extract)
	topN := def.TopN
	if topN <= 0 {
		topN = a.opts.TopN
	}
	return aggregate.TopN(buckets, topN)
}

// RenderView draws one named view into the renderer. Each slot is released
// before it is redrawn, so repeated calls fully replace their output.
func (a *App) RenderView(r render.Renderer, name string) error {
	view, ok := a.views.View(name)
	if !ok {
		return eris.Errorf("dashboard: unknown view %s", name)
	}

	for _, def := range view.Charts {
		r.Release(def.Slot)

		buckets := a.Buckets(def)
		palette := def.Palette
		if len(palette) == 0 {
			palette = defaultPalette
		}
		series := render.Series{
			Title:   def.Title,
			Kind:    def.Kind,
			Labels:  buckets.Labels(),
			Values:  buckets.Counts(),
			Palette: palette,
		}
		if err := r.RenderChart(def.Slot, series); err != nil {
			return eris.Wrapf(err, "dashboard: render %s", def.Slot)
		}
	}
	return nil
}

// RenderAll draws every configured view. Safe to call repeatedly in
// immediate succession.
func (a *App) RenderAll(r render.Renderer) error {
	for _, view := range a.views.Views {
		if err := a.RenderView(r, view.Name); err != nil {
			return err
		}
	}
	return nil
}
