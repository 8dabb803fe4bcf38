// Package gradebook 提供基于二叉搜索树的成绩册服务.
//
// Book 以学生姓名为键、成绩为值，允许同名学生重复记录.
// 每次操作都会记录结构化日志和 Prometheus 指标.
package gradebook

import (
	"context"
	"fmt"
	"time"

	"github.com/Tsukikage7/bstree/collections/bst"
	"github.com/Tsukikage7/bstree/logger"
	"github.com/Tsukikage7/bstree/metrics"
)

// Book 成绩册. 不是并发安全的.
type Book struct {
	name    string
	tree    *bst.Tree[string, float64]
	base    logger.Logger
	log     logger.Logger
	metrics metrics.Collector
	verify  bool
}

// Option 成绩册选项.
type Option func(*Book)

// WithLogger 设置日志记录器.
func WithLogger(l logger.Logger) Option {
	return func(b *Book) {
		if l != nil {
			b.base = l
		}
	}
}

// WithMetrics 设置指标收集器.
func WithMetrics(c metrics.Collector) Option {
	return func(b *Book) {
		if c != nil {
			b.metrics = c
		}
	}
}

// WithVerify 每次修改后调用 Validate 检查树结构.
func WithVerify(verify bool) Option {
	return func(b *Book) {
		b.verify = verify
	}
}

// New 创建空的成绩册.
func New(name string, opts ...Option) *Book {
	b := &Book{
		name:    name,
		tree:    bst.NewOrdered[string, float64](),
		base:    logger.NewNop(),
		metrics: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.base.With(logger.String("book", name))
	return b
}

// FromConfig 按配置创建成绩册并写入初始成绩.
func FromConfig(ctx context.Context, cfg *Config, opts ...Option) *Book {
	opts = append([]Option{WithVerify(cfg.Verify)}, opts...)
	b := New(cfg.Name, opts...)
	for _, g := range cfg.Seed {
		b.Record(ctx, g.Student, g.Grade)
	}
	return b
}

// Name 返回成绩册名称.
func (b *Book) Name() string {
	return b.name
}

// Record 记录一条成绩，同名学生不会被覆盖.
func (b *Book) Record(ctx context.Context, student string, grade float64) {
	start := time.Now()
	b.tree.Insert(student, grade)
	b.observe("insert", metrics.ResultOK, start)

	b.log.WithContext(ctx).With(
		logger.String("student", student),
		logger.Float64("grade", grade),
		logger.Int("size", b.tree.Len()),
	).Debug("成绩已记录")
}

// Lookup 查询学生成绩. 存在同名记录时返回最早记录的那条.
func (b *Book) Lookup(ctx context.Context, student string) (float64, error) {
	start := time.Now()
	grade, err := b.tree.Search(student)
	if err != nil {
		b.observe("search", metrics.ResultNotFound, start)
		b.log.WithContext(ctx).With(logger.String("student", student)).Warn("未找到学生")
		return 0, fmt.Errorf("%w: %w", ErrStudentNotFound, err)
	}

	b.observe("search", metrics.ResultOK, start)
	return grade, nil
}

// Drop 删除学生的一条成绩，学生不存在时什么也不做.
func (b *Book) Drop(ctx context.Context, student string) bool {
	start := time.Now()
	grade, removed := b.tree.Delete(student)

	result := metrics.ResultOK
	if !removed {
		result = metrics.ResultNoop
	}
	b.observe("remove", result, start)

	log := b.log.WithContext(ctx).With(logger.String("student", student))
	if removed {
		log.With(logger.Float64("grade", grade), logger.Int("height", b.tree.Height())).Info("成绩已删除")
	} else {
		log.Debug("学生不存在，忽略删除")
	}
	return removed
}

// Copy 深拷贝为名为 name 的新成绩册，共享日志与指标配置.
func (b *Book) Copy(name string) *Book {
	start := time.Now()
	dup := &Book{
		name:    name,
		tree:    b.tree.Clone(),
		base:    b.base,
		log:     b.base.With(logger.String("book", name)),
		metrics: b.metrics,
		verify:  b.verify,
	}
	dup.observe("clone", metrics.ResultOK, start)
	return dup
}

// ReplaceWith 用 src 的深拷贝替换当前内容.
func (b *Book) ReplaceWith(src *Book) {
	start := time.Now()
	if src == nil {
		b.tree.Clear()
	} else {
		b.tree.Assign(src.tree)
	}
	b.observe("assign", metrics.ResultOK, start)
	b.log.With(logger.Int("size", b.tree.Len())).Info("成绩册已替换")
}

// Reset 清空成绩册.
func (b *Book) Reset() {
	start := time.Now()
	b.tree.Clear()
	b.observe("clear", metrics.ResultOK, start)
	b.log.Info("成绩册已清空")
}

// Len 返回记录数.
func (b *Book) Len() int {
	return b.tree.Len()
}

// Height 返回底层树的高度，空成绩册为 -1.
func (b *Book) Height() int {
	return b.tree.Height()
}

// Students 按姓名升序返回所有学生，重复记录会重复出现.
func (b *Book) Students() []string {
	return b.tree.Keys()
}

// Grades 按姓名升序返回所有成绩记录.
func (b *Book) Grades() []Grade {
	grades := make([]Grade, 0, b.tree.Len())
	for student, grade := range b.tree.All() {
		grades = append(grades, Grade{Student: student, Grade: grade})
	}
	return grades
}

// Average 返回平均成绩，空成绩册返回 0.
func (b *Book) Average() float64 {
	if b.tree.IsEmpty() {
		return 0
	}

	var sum float64
	for _, grade := range b.tree.All() {
		sum += grade
	}
	avg := sum / float64(b.tree.Len())
	b.metrics.Gauge("grade_average", avg, map[string]string{"book": b.name})
	return avg
}

// observe 记录操作指标，并按需检查树结构.
func (b *Book) observe(op, result string, start time.Time) {
	b.metrics.RecordOperation(b.name, op, result, time.Since(start))
	if op == "search" {
		return
	}
	b.metrics.ObserveShape(b.name, b.tree.Len(), b.tree.Height())

	if b.verify {
		if err := b.tree.Validate(); err != nil {
			b.log.With(logger.String("op", op), logger.Err(err)).Error("树结构检查失败")
			panic(err)
		}
	}
}
