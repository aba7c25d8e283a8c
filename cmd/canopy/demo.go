package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/introspect"
	"github.com/aretw0/canopy/pkg/observability"
	"github.com/aretw0/canopy/pkg/viz"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in demo trees",
}

var waypointsCmd = &cobra.Command{
	Use:   "waypoints",
	Short: "Drive a simulated robot through a list of waypoints",
	Long: `Ticks a tree that visits each destination in turn, diverting home to
charge whenever the battery runs low. The mission ends when the
destination list is exhausted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := appLogger(cmd)

		m := defaultMission()
		if path, _ := cmd.Flags().GetString("mission"); path != "" {
			var err error
			if m, err = loadMission(path); err != nil {
				return err
			}
		}
		interval, _ := cmd.Flags().GetDuration("interval")
		serveAddr, _ := cmd.Flags().GetString("http")
		trace, _ := cmd.Flags().GetBool("trace")

		hooks := []func(canopy.TickEvent){observability.SlogHook(log)}
		var pub introspect.Publisher
		if serveAddr != "" {
			reg := prometheus.NewRegistry()
			metrics := observability.NewMetrics(reg)
			hooks = append(hooks, metrics.Hook())

			srv := introspectionServer(serveAddr, &pub, reg, log)
			defer srv.Close()
		}

		robot := newRobot(m.Robot.Speed, m.Robot.DischargeRate)
		b := &Blackboard{Robot: robot, Destinations: m.Destinations}

		tc := canopy.NewContext(canopy.WithTickHook(observability.Combine(hooks...)))
		h, err := buildWaypointTree()(tc)
		if err != nil {
			return err
		}
		defer h.Close()

		var result canopy.Result
		last := time.Now()
		for {
			now := time.Now()
			robot.Sense(now.Sub(last).Seconds())
			last = now

			result, err = h.Tick(b)
			if err != nil {
				return err
			}
			if snap, err := introspect.Capture(tc); err == nil {
				pub.Publish(snap)
			}
			log.Info("mission",
				"x", fmt.Sprintf("%.2f", robot.Position.X),
				"y", fmt.Sprintf("%.2f", robot.Position.Y),
				"battery", fmt.Sprintf("%.2f", robot.Battery),
				"charging", b.Charging,
				"remaining", len(b.Destinations),
			)
			if result.Terminal() {
				break
			}
			time.Sleep(interval)
		}

		if tree, err := viz.Build(tc); err == nil {
			fmt.Print(viz.Render(tree))
		}
		if trace {
			if err := viz.WriteTrace(os.Stdout, tc); err != nil {
				return err
			}
		}
		fmt.Printf("mission ended with %s\n", result)
		return nil
	},
}

var backgroundCmd = &cobra.Command{
	Use:   "background",
	Short: "Poll slow background work without blocking the tick loop",
	Long: `Runs two simulated slow calls in parallel. Each leaf starts its work on
a goroutine and reports Running until the result arrives on a channel,
so every tick returns promptly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := appLogger(cmd)
		interval, _ := cmd.Flags().GetDuration("interval")

		root := canopy.Redo(
			canopy.Parallel(
				callEndpoint("fast_endpoint", 1*time.Second),
				callEndpoint("slow_endpoint", 3*time.Second),
			),
			canopy.WithCount(2),
		)

		tc := canopy.NewContext(canopy.WithTickHook(observability.SlogHook(log)))
		h, err := root(tc)
		if err != nil {
			return err
		}
		defer h.Close()

		var result canopy.Result
		for {
			result, err = h.Tick(log)
			if err != nil {
				return err
			}
			if result.Terminal() {
				break
			}
			time.Sleep(interval)
		}

		if tree, err := viz.Build(tc); err == nil {
			fmt.Print(viz.Render(tree))
		}
		fmt.Printf("finished with %s\n", result)
		return nil
	},
}

// callEndpoint simulates a slow remote call: the first tick launches the
// work on a goroutine, later ticks poll its channel.
func callEndpoint(name string, d time.Duration) canopy.Node[*slog.Logger] {
	return canopy.Action(name, func(*canopy.Context) (canopy.Tick[*slog.Logger], func() error, error) {
		var done chan bool
		tick := func(log *slog.Logger) (canopy.Result, error) {
			if done == nil {
				done = make(chan bool, 1)
				log.Debug("starting slow task", "task", name, "duration", d)
				go func() {
					time.Sleep(d)
					done <- true
				}()
				return canopy.Running, nil
			}
			select {
			case ok := <-done:
				log.Debug("slow task finished", "task", name, "ok", ok)
				if !ok {
					return canopy.Failure, nil
				}
				return canopy.Success, nil
			default:
				return canopy.Running, nil
			}
		}
		return tick, nil, nil
	})
}

// introspectionServer exposes the latest snapshot and the Prometheus
// registry, and keeps serving until the command exits.
func introspectionServer(addr string, pub *introspect.Publisher, reg *prometheus.Registry, log *slog.Logger) *http.Server {
	r := chi.NewRouter()
	r.Mount("/", introspect.NewHandler(pub))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		log.Info("introspection server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("introspection server", "error", err)
		}
	}()
	return srv
}

func init() {
	waypointsCmd.Flags().String("mission", "", "Path to a mission YAML file")
	waypointsCmd.Flags().Duration("interval", 100*time.Millisecond, "Delay between ticks")
	waypointsCmd.Flags().String("http", "", "Address for the introspection HTTP server (e.g. :8080)")
	waypointsCmd.Flags().Bool("trace", false, "Dump the full bookkeeping trace after the mission ends")
	backgroundCmd.Flags().Duration("interval", 100*time.Millisecond, "Delay between ticks")

	demoCmd.AddCommand(waypointsCmd)
	demoCmd.AddCommand(backgroundCmd)
	rootCmd.AddCommand(demoCmd)
}
