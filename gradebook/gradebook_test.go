package gradebook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Tsukikage7/bstree/collections/bst"
	"github.com/Tsukikage7/bstree/config"
	"github.com/Tsukikage7/bstree/logger"
	"github.com/Tsukikage7/bstree/metrics"
)

type GradebookTestSuite struct {
	suite.Suite
	ctx       context.Context
	logs      *bytes.Buffer
	log       logger.Logger
	collector *metrics.PrometheusCollector
}

func TestGradebookSuite(t *testing.T) {
	suite.Run(t, new(GradebookTestSuite))
}

func (s *GradebookTestSuite) SetupTest() {
	s.ctx = logger.ContextWithOperationID(context.Background(), "test-op")
	s.logs = &bytes.Buffer{}

	log, err := logger.NewWriterLogger(&logger.Config{Level: logger.LevelDebug, Format: logger.FormatJSON}, s.logs)
	s.Require().NoError(err)
	s.log = log
	s.collector = metrics.MustNewMetrics(metrics.DefaultConfig())
}

func (s *GradebookTestSuite) newBook(name string) *Book {
	return New(name, WithLogger(s.log), WithMetrics(s.collector), WithVerify(true))
}

func (s *GradebookTestSuite) seeded(name string) *Book {
	b := s.newBook(name)
	for _, g := range DemoSeed() {
		b.Record(s.ctx, g.Student, g.Grade)
	}
	return b
}

func (s *GradebookTestSuite) logEntries() []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(s.logs.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		s.Require().NoError(json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func (s *GradebookTestSuite) metricsText() string {
	var buf bytes.Buffer
	s.Require().NoError(s.collector.WriteText(&buf))
	return buf.String()
}

func (s *GradebookTestSuite) TestRunDemo() {
	var out bytes.Buffer

	report, err := RunDemo(s.ctx, &out, WithLogger(s.log), WithMetrics(s.collector), WithVerify(true))
	s.Require().NoError(err)

	s.Equal(3.5, report.Lookup)
	s.Equal([]string{"Chen", "Ellen", "Kevin", "Kumar", "Ricardo"}, report.Students)
	s.Equal(3, report.HeightBefore)
	s.Equal(2, report.HeightAfter)

	expected := "Grade of Ellen is 3.5\n" +
		"Key: \"Chen\", Value: \"2.5\"\n" +
		"Key: \"Ellen\", Value: \"3.5\"\n" +
		"Key: \"Kevin\", Value: \"3.25\"\n" +
		"Key: \"Kumar\", Value: \"3.05\"\n" +
		"Key: \"Ricardo\", Value: \"2.5\"\n"
	s.Equal(expected, out.String())

	text := s.metricsText()
	s.Contains(text, `gradebook_tree_operations_total{op="remove",result="ok",tree="copy"} 1`)
	s.Contains(text, `gradebook_tree_operations_total{op="insert",result="ok",tree="primary"} 5`)
	s.Contains(text, `gradebook_tree_height{tree="copy"} 2`)
}

func (s *GradebookTestSuite) TestRunDemoWriterError() {
	_, err := RunDemo(s.ctx, failingWriter{})
	s.Error(err)
}

func (s *GradebookTestSuite) TestLookup() {
	b := s.seeded("primary")

	grade, err := b.Lookup(s.ctx, "Kevin")
	s.NoError(err)
	s.Equal(3.25, grade)

	_, err = b.Lookup(s.ctx, "Zoe")
	s.ErrorIs(err, ErrStudentNotFound)
	s.ErrorIs(err, bst.ErrNotFound)

	var warned bool
	for _, e := range s.logEntries() {
		if e["msg"] == "未找到学生" {
			warned = true
			s.Equal("Zoe", e["student"])
			s.Equal("primary", e["book"])
			s.Equal("test-op", e["operationId"])
		}
	}
	s.True(warned)
	s.Contains(s.metricsText(), `gradebook_tree_operations_total{op="search",result="not_found",tree="primary"} 1`)
}

func (s *GradebookTestSuite) TestDropAbsentIsNoop() {
	b := s.seeded("primary")
	before := b.Grades()

	s.False(b.Drop(s.ctx, "Zoe"))
	s.Equal(before, b.Grades())
	s.Equal(3, b.Height())
	s.Contains(s.metricsText(), `gradebook_tree_operations_total{op="remove",result="noop",tree="primary"} 1`)
}

func (s *GradebookTestSuite) TestDuplicateStudents() {
	b := s.newBook("dups")
	b.Record(s.ctx, "Chen", 2.5)
	b.Record(s.ctx, "Chen", 3.0)

	grade, err := b.Lookup(s.ctx, "Chen")
	s.NoError(err)
	s.Equal(2.5, grade)
	s.Equal([]string{"Chen", "Chen"}, b.Students())

	s.True(b.Drop(s.ctx, "Chen"))
	grade, err = b.Lookup(s.ctx, "Chen")
	s.NoError(err)
	s.Equal(3.0, grade)
}

func (s *GradebookTestSuite) TestCopyIndependence() {
	a := s.seeded("primary")
	b := a.Copy("copy")

	s.Equal("copy", b.Name())
	s.Equal(a.Grades(), b.Grades())

	a.Drop(s.ctx, "Chen")
	b.Record(s.ctx, "Zoe", 4.0)

	s.Equal([]string{"Ellen", "Kevin", "Kumar", "Ricardo"}, a.Students())
	s.Equal([]string{"Chen", "Ellen", "Kevin", "Kumar", "Ricardo", "Zoe"}, b.Students())

	for _, e := range s.logEntries() {
		if e["student"] == "Zoe" {
			s.Equal("copy", e["book"])
		}
	}
}

func (s *GradebookTestSuite) TestReplaceWithAndReset() {
	a := s.seeded("primary")
	b := s.newBook("other")
	b.Record(s.ctx, "Old", 1.0)

	b.ReplaceWith(a)
	s.Equal(a.Grades(), b.Grades())

	a.Reset()
	s.Equal(0, a.Len())
	s.Equal(-1, a.Height())
	s.Equal(5, b.Len())

	_, err := a.Lookup(s.ctx, "Ellen")
	s.ErrorIs(err, ErrStudentNotFound)

	b.ReplaceWith(nil)
	s.Equal(0, b.Len())
}

func (s *GradebookTestSuite) TestAverage() {
	b := s.seeded("primary")
	s.InDelta(2.96, b.Average(), 1e-9)
	s.Contains(s.metricsText(), `gradebook_grade_average{book="primary"}`)

	s.Equal(0.0, s.newBook("empty").Average())
}

func (s *GradebookTestSuite) TestRender() {
	b := s.seeded("primary")

	var lines bytes.Buffer
	s.NoError(b.Render(&lines, FormatLines))
	s.True(strings.HasPrefix(lines.String(), "Key: \"Chen\", Value: \"2.5\"\n"))

	var table bytes.Buffer
	s.NoError(b.Render(&table, FormatTable))
	out := table.String()
	s.Contains(strings.ToLower(out), "student")
	s.Contains(out, "Ricardo")
	s.Contains(out, "3.25")
	s.Contains(out, "2.96")
	s.Less(strings.Index(out, "Chen"), strings.Index(out, "Ricardo"))

	s.Error(b.Render(&table, "xml"))
}

func (s *GradebookTestSuite) TestFromConfig() {
	cfg := &Config{
		Name:   "configured",
		Verify: true,
		Seed:   []Grade{{Student: "b", Grade: 2}, {Student: "a", Grade: 1}},
	}

	b := FromConfig(s.ctx, cfg, WithLogger(s.log))
	s.Equal("configured", b.Name())
	s.Equal([]Grade{{Student: "a", Grade: 1}, {Student: "b", Grade: 2}}, b.Grades())
}

func (s *GradebookTestSuite) TestLoadConfigDefaults() {
	cfg, err := LoadConfig("")
	s.Require().NoError(err)

	s.Equal("primary", cfg.Name)
	s.Equal(DemoSeed(), cfg.Seed)
	s.Require().NotNil(cfg.Logger)
	s.Equal(logger.LevelInfo, cfg.Logger.Level)
	s.Require().NotNil(cfg.Metrics)
	s.False(cfg.Metrics.Enabled)
}

func (s *GradebookTestSuite) TestLoadConfigEnv() {
	s.T().Setenv("GRADEBOOK_NAME", "from-env")
	s.T().Setenv("GRADEBOOK_LOGGER_LEVEL", "debug")

	cfg, err := LoadConfig("")
	s.Require().NoError(err)
	s.Equal("from-env", cfg.Name)
	s.Equal(logger.LevelDebug, cfg.Logger.Level)
}

func (s *GradebookTestSuite) TestLoadConfigFile() {
	path := filepath.Join(s.T().TempDir(), "gradebook.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
name: semester
verify: true
seed:
  - student: Ada
    grade: 4.0
  - student: Bob
    grade: 3.1
logger:
  level: warn
  format: json
`), 0o644))

	cfg, err := LoadConfig(path)
	s.Require().NoError(err)
	s.Equal("semester", cfg.Name)
	s.True(cfg.Verify)
	s.Equal([]Grade{{Student: "Ada", Grade: 4.0}, {Student: "Bob", Grade: 3.1}}, cfg.Seed)
	s.Equal(logger.LevelWarn, cfg.Logger.Level)
	s.Equal(logger.FormatJSON, cfg.Logger.Format)
}

func (s *GradebookTestSuite) TestLoadConfigInvalid() {
	path := filepath.Join(s.T().TempDir(), "bad.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("seed:\n  - grade: 3.0\n"), 0o644))

	_, err := LoadConfig(path)
	s.ErrorIs(err, config.ErrValidation)

	_, err = LoadConfig(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.ErrorIs(err, config.ErrFileNotFound)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}
