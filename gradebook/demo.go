package gradebook

import (
	"context"
	"fmt"
	"io"
)

const (
	demoStudent          = "Ellen"
	expectedHeightBefore = 3
	expectedHeightAfter  = 2
)

// DemoReport 演示流程的观测结果.
type DemoReport struct {
	Lookup       float64
	Students     []string
	HeightBefore int
	HeightAfter  int
}

// RunDemo 演示成绩册的完整流程:
// 写入 DemoSeed，复制到第二个成绩册，查询 Ellen 并打印全部成绩，
// 然后从副本中删除 Ellen，检查副本高度由 3 变为 2.
//
// 高度与预期不符时返回包装了 ErrUnexpected 的错误，同时返回已收集的结果.
func RunDemo(ctx context.Context, w io.Writer, opts ...Option) (*DemoReport, error) {
	primary := New("primary", opts...)
	for _, g := range DemoSeed() {
		primary.Record(ctx, g.Student, g.Grade)
	}

	copied := New("copy", opts...)
	copied.ReplaceWith(primary)

	grade, err := primary.Lookup(ctx, demoStudent)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(w, "Grade of %s is %v\n", demoStudent, grade); err != nil {
		return nil, err
	}
	if err := primary.Print(w); err != nil {
		return nil, err
	}

	report := &DemoReport{
		Lookup:       grade,
		Students:     primary.Students(),
		HeightBefore: copied.Height(),
	}

	copied.Drop(ctx, demoStudent)
	report.HeightAfter = copied.Height()

	if report.HeightBefore != expectedHeightBefore {
		return report, fmt.Errorf("%w: height before removal is %d, want %d",
			ErrUnexpected, report.HeightBefore, expectedHeightBefore)
	}
	if report.HeightAfter != expectedHeightAfter {
		return report, fmt.Errorf("%w: height after removal is %d, want %d",
			ErrUnexpected, report.HeightAfter, expectedHeightAfter)
	}
	return report, nil
}
