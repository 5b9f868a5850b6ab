package main

import (
	"fmt"
	"os"
	"time"

	"elevdispatch/config"
	"elevdispatch/controller"
	"elevdispatch/elevator"
	"elevdispatch/scheduler"
)

func main() {

	// Optional first argument: path to a YAML config file
	cfg := config.Default()
	args := os.Args[1:]
	if len(args) >= 1 {
		loaded, err := config.Load(args[0])
		if err != nil {
			fmt.Println("could not load config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctrl := controller.New(cfg, scheduler.NewNearestCarWithPenalty(cfg.NearestCarPenalty))
	if err := ctrl.Start(); err != nil {
		fmt.Println("could not start controller:", err)
		os.Exit(1)
	}

	// Scripted demo traffic
	ctrl.SubmitExternalRequest(5, elevator.DirectionUp)
	ctrl.SubmitExternalRequest(2, elevator.DirectionDown)
	ctrl.SubmitInternalRequest("E1", 8)

	for i := 0; i < 20; i++ {
		time.Sleep(cfg.TickInterval)
		for _, s := range ctrl.AllStatuses() {
			fmt.Printf("%s: floor=%d dir=%s door=%s service=%s stops=%v\n",
				s.ID, s.Floor, s.Direction, s.Door, s.Service, s.PendingStops)
		}
		fmt.Println()
	}

	ctrl.Shutdown()
}
