package cmd

import (
	"context"

	"dsc/worker"
	"dsc/worker/cashier"
	"dsc/worker/monitor"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "dsc job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		s := provideServices(ctx)

		batch, _ := cmd.Flags().GetInt("batch")
		capacity, _ := cmd.Flags().GetInt64("capacity")
		spec, _ := cmd.Flags().GetString("monitor.spec")

		jobs := []worker.IJob{
			monitor.New(monitor.Config{
				Location: cfg.App.Location,
				Spec:     spec,
				Batch:    batch,
			}, s.debts, s.engine),
		}

		if cfg.Custodian.EndPoint != "" {
			jobs = append(jobs, cashier.New(s.transfers, provideCustodian(), providePropertyStore(provideDatabase()), cashier.Config{
				Location: cfg.App.Location,
				Batch:    batch,
				Capacity: capacity,
			}))
		} else {
			log.Warnln("custodian end point not set, cashier disabled")
		}

		ctx, quit := context.WithCancel(ctx)
		signal.WithContextFunc(ctx, quit)

		g, ctx := errgroup.WithContext(ctx)
		for _, job := range jobs {
			job := job

			g.Go(func() error {
				if err := job.Start(); err != nil {
					return err
				}

				<-ctx.Done()
				return job.Stop()
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Errorln("worker stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Int("batch", 100, "custom batch for workers")
	workerCmd.Flags().Int64("capacity", 1, "custom capacity for worker cashier")
	workerCmd.Flags().String("monitor.spec", "@every 1m", "cron spec of the liquidation monitor")
}
