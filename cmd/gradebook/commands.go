package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Tsukikage7/bstree/gradebook"
	"github.com/Tsukikage7/bstree/logger"
	"github.com/Tsukikage7/bstree/metrics"
	"github.com/Tsukikage7/bstree/recovery"
)

// app 命令之间共享的状态.
type app struct {
	configPath  string
	logLevel    string
	metricsDump bool

	cfg       *gradebook.Config
	log       logger.Logger
	collector metrics.Collector
}

// action 命令体，ctx 中带有本次调用的操作编号.
type action func(ctx context.Context, cmd *cobra.Command, args []string) error

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "gradebook",
		Short:        "Ordered gradebook backed by a binary search tree",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logger.level")
	root.PersistentFlags().BoolVar(&a.metricsDump, "metrics-dump", false, "write collected metrics to stdout on exit")

	root.AddCommand(
		a.demoCmd(),
		a.printCmd(),
		a.lookupCmd(),
		a.removeCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := gradebook.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logger.Level = a.logLevel
		if err := cfg.Logger.Validate(); err != nil {
			return err
		}
	}

	collector := metrics.Collector(metrics.Nop{})
	if a.dumpMetrics(cfg) {
		pc, err := metrics.NewMetrics(cfg.Metrics)
		if err != nil {
			return err
		}
		collector = pc
	}

	log, err := logger.NewWriterLogger(cfg.Logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.collector = collector
	return nil
}

func (a *app) dumpMetrics(cfg *gradebook.Config) bool {
	return a.metricsDump || cfg.Metrics.Enabled
}

// teardown 输出指标并关闭日志，命令失败时同样执行.
func (a *app) teardown(cmd *cobra.Command) error {
	var dumpErr error
	if a.dumpMetrics(a.cfg) {
		dumpErr = a.collector.WriteText(cmd.OutOrStdout())
	}
	if err := a.log.Close(); err != nil {
		return err
	}
	return dumpErr
}

// run 把 action 包装为 cobra 的 RunE:
// 生成操作编号，把 panic 转换为错误，并在返回前执行 teardown.
func (a *app) run(fn action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if terr := a.teardown(cmd); err == nil {
				err = terr
			}
		}()

		ctx := a.context(cmd)
		return recovery.Guard(ctx, func() error {
			return fn(ctx, cmd, args)
		}, recovery.WithLogger(a.log))
	}
}

// context 为每次调用生成操作编号.
func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.ContextWithOperationID(ctx, uuid.NewString())
}

func (a *app) options() []gradebook.Option {
	return []gradebook.Option{
		gradebook.WithLogger(a.log),
		gradebook.WithMetrics(a.collector),
		gradebook.WithVerify(a.cfg.Verify),
	}
}

func (a *app) book(ctx context.Context) *gradebook.Book {
	return gradebook.FromConfig(ctx, a.cfg, a.options()...)
}

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the five-student walkthrough and check tree heights",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			report, err := gradebook.RunDemo(ctx, cmd.OutOrStdout(), a.options()...)
			if err != nil {
				return err
			}
			a.log.WithContext(ctx).With(
				logger.Int("height_before", report.HeightBefore),
				logger.Int("height_after", report.HeightAfter),
			).Info("演示完成")
			return nil
		}),
	}
}

func (a *app) printCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print all grades in ascending student order",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			return a.book(ctx).Render(cmd.OutOrStdout(), format)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", gradebook.FormatLines, "output format: lines or table")
	return cmd
}

func (a *app) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup STUDENT",
		Short: "Look up the grade of a student",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			grade, err := a.book(ctx).Lookup(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Grade of %s is %v\n", args[0], grade)
			return err
		}),
	}
}

func (a *app) removeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "remove STUDENT",
		Short: "Remove a student and print the remaining grades",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			book := a.book(ctx)
			before := book.Height()
			book.Drop(ctx, args[0])

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "height %d -> %d\n", before, book.Height()); err != nil {
				return err
			}
			return book.Render(cmd.OutOrStdout(), format)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", gradebook.FormatLines, "output format: lines or table")
	return cmd
}
