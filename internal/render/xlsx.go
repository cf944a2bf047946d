package render

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXWriter renders tables and chart series into an xlsx workbook, one
// sheet per slot. Charts become two-column label/value sheets.
type XLSXWriter struct {
	reg  Registry
	file *xlsx.File
	// slot order is kept so sheets come out in render order.
	slots []string
}

// NewXLSXWriter returns an empty workbook writer.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{file: xlsx.NewFile()}
}

// sheetName trims a slot to Excel's 31-character sheet name limit.
func sheetName(slot string) string {
	if len(slot) > 31 {
		return slot[:31]
	}
	return slot
}

// RenderChart writes the series as a label/value sheet. The slot must be
// free.
func (w *XLSXWriter) RenderChart(slot string, s Series) error {
	if _, err := w.reg.Acquire(slot); err != nil {
		return err
	}

	sheet, err := w.file.AddSheet(sheetName(slot))
	if err != nil {
		return eris.Wrapf(err, "xlsx: add sheet %s", slot)
	}
	header := sheet.AddRow()
	header.AddCell().SetString(s.Title)
	header.AddCell().SetString("Count")
	for i, label := range s.Labels {
		row := sheet.AddRow()
		row.AddCell().SetString(label)
		if i < len(s.Values) {
			row.AddCell().SetFloat(s.Values[i])
		}
	}

	w.slots = append(w.slots, slot)
	return nil
}

// RenderTable writes the table as a sheet. The slot must be free.
func (w *XLSXWriter) RenderTable(slot string, t Table) error {
	if _, err := w.reg.Acquire(slot); err != nil {
		return err
	}

	sheet, err := w.file.AddSheet(sheetName(slot))
	if err != nil {
		return eris.Wrapf(err, "xlsx: add sheet %s", slot)
	}
	header := sheet.AddRow()
	for _, h := range t.Headers {
		header.AddCell().SetString(h)
	}
	for _, cells := range t.Rows {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().SetString(c)
		}
	}

	w.slots = append(w.slots, slot)
	return nil
}

// Release frees the slot. The sheet already written stays in the
// workbook; exports render each slot once, so a release never precedes a
// second render here.
func (w *XLSXWriter) Release(slot string) {
	w.reg.Release(slot)
}

// Slots returns the rendered slot names in render order.
func (w *XLSXWriter) Slots() []string {
	out := make([]string, len(w.slots))
	copy(out, w.slots)
	return out
}

// Save writes the workbook to path.
func (w *XLSXWriter) Save(path string) error {
	if err := w.file.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}
