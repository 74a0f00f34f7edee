package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ivlev/listvideo/internal/director"
	"github.com/ivlev/listvideo/internal/engine"
	"github.com/ivlev/listvideo/internal/source"
	"github.com/ivlev/listvideo/internal/system"
)

// plansDir хранит планы, созданные без явного --output
const plansDir = "outputs/plans"

var planFlags struct {
	list   string
	output string
	check  string
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the timeline and write it as YAML without encoding",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFlags.list, "list", "l", "", "Путь к JSON-списку")
	planCmd.Flags().StringVarP(&planFlags.output, "output", "o", "", "Путь к плану (по умолчанию: outputs/plans/plan_<время>.yaml)")
	planCmd.Flags().StringVar(&planFlags.check, "check", "", "Проверить существующий план вместо построения нового (latest - самый свежий в "+plansDir+")")
}

func runPlan(cmd *cobra.Command, args []string) error {
	if planFlags.check != "" {
		return checkPlan(planFlags.check)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("list") {
		cfg.ListPath = planFlags.list
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewVideoProject(cfg, source.FileLoader{}, system.FFprobe{}, nil)
	plan, _, err := project.Plan(ctx)
	if err != nil {
		return err
	}

	out := planFlags.output
	if out == "" {
		out = director.GeneratePlanPath(plansDir)
	}
	if err := director.WritePlan(plan, out); err != nil {
		return err
	}
	fmt.Printf("[+++] Успех! План сохранен: %s (%d пунктов, %.2fs)\n", out, len(plan.Items), plan.Duration)
	return nil
}

// resolvePlanPath maps "latest" to the newest plan in dir.
func resolvePlanPath(arg, dir string) (string, error) {
	if arg != "latest" {
		return arg, nil
	}
	path, err := director.FindLatestPlan(dir)
	if err != nil {
		return "", err
	}
	fmt.Printf("[*] Выбран план: %s\n", path)
	return path, nil
}

func checkPlan(arg string) error {
	path, err := resolvePlanPath(arg, plansDir)
	if err != nil {
		return err
	}
	plan, err := director.ReadPlan(path)
	if err != nil {
		return err
	}
	if err := plan.Check(); err != nil {
		return fmt.Errorf("план %s некорректен: %w", path, err)
	}
	fmt.Printf("[+++] План корректен: %d пунктов, %.2fs\n", len(plan.Items), plan.Duration)
	return nil
}
