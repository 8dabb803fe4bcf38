package gradebook

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// 输出格式.
const (
	FormatLines = "lines"
	FormatTable = "table"
)

// Print 按姓名升序逐行写出成绩:
//
//	Key: "Chen", Value: "2.5"
func (b *Book) Print(w io.Writer) error {
	return b.tree.PrintInorder(w)
}

// RenderTable 以表格形式写出成绩与平均分.
func (b *Book) RenderTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(b.name)
	t.AppendHeader(table.Row{"#", "Student", "Grade"})
	for i, g := range b.Grades() {
		t.AppendRow(table.Row{i + 1, g.Student, g.Grade})
	}
	t.AppendFooter(table.Row{"", "Average", fmt.Sprintf("%.2f", b.Average())})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}

// Render 按 format 写出成绩，未知格式返回错误.
func (b *Book) Render(w io.Writer, format string) error {
	switch format {
	case FormatLines, "":
		return b.Print(w)
	case FormatTable:
		b.RenderTable(w)
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
